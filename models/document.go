package models

// Document is the generic decoded form of a resource payload. Resource
// services and pipeline hooks operate on documents; the HTTP layer writes
// them back verbatim as the response body.
type Document map[string]any

// Reserved document fields maintained by the generic resource service.
// The bookkeeping timestamps and author fields are stamped on every write;
// a client-supplied _id is honored on create.
const (
	DocumentFieldID         = "_id"
	DocumentFieldCreatedAt  = "sys_created_at"
	DocumentFieldCreatedBy  = "sys_created_by"
	DocumentFieldModifiedAt = "sys_modified_at"
	DocumentFieldModifiedBy = "sys_modified_by"
)

// ID returns the document's identifier, or "" when the document has not been
// persisted yet.
func (d Document) ID() string {
	id, _ := d[DocumentFieldID].(string)
	return id
}
