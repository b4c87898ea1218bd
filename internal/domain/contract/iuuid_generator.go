package contract

// IUUIDGenerator generates unique identifiers for observer handles.
type IUUIDGenerator interface {
	NewUUID() string
}
