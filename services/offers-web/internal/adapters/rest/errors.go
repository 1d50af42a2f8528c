package rest

import "errors"

var errInvalidOfferID = errors.New("invalid offer ID format")
