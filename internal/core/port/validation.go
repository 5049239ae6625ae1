package port

// Validator turns raw input structs into trusted, shaped values. A failure
// is returned as a *domain.Error with status 400 and per-field messages.
type Validator interface {
	ValidateStruct(s interface{}) error
}
