package logger

// KeyValueBridge адаптирует LoggerPort к интерфейсу в стиле
// "сообщение + пары ключ/значение", который используют пакеты из pkg/rabbitmq.
type KeyValueBridge struct {
	internal LoggerPort
}

// NewKeyValueBridge создает новый мост.
func NewKeyValueBridge(l LoggerPort) *KeyValueBridge {
	return &KeyValueBridge{internal: l}
}

func (b *KeyValueBridge) toFields(keysAndValues ...interface{}) Fields {
	fields := make(Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue // пропускаем некорректные пары
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}

func (b *KeyValueBridge) Debug(msg string, keysAndValues ...interface{}) {
	b.internal.Debug(msg, b.toFields(keysAndValues...))
}

func (b *KeyValueBridge) Info(msg string, keysAndValues ...interface{}) {
	b.internal.Info(msg, b.toFields(keysAndValues...))
}

func (b *KeyValueBridge) Warn(msg string, keysAndValues ...interface{}) {
	b.internal.Warn(msg, b.toFields(keysAndValues...))
}

func (b *KeyValueBridge) Error(err error, msg string, keysAndValues ...interface{}) {
	b.internal.Error(msg, err, b.toFields(keysAndValues...))
}
