package middleware

var ParseValidationError = parseValidationError
