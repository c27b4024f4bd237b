// Package types defines the entity contract shared by every kind (identity,
// timestamps, dictionary conversion), the seven entity kinds, the kind
// registry used to rebuild entities from their __class__ tag, the Value
// union for dynamic fields, and the standard error values.
package types
