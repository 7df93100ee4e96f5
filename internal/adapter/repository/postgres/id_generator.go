package postgres

import "github.com/oklog/ulid/v2"

// ULIDGenerator mints record and entity IDs. ULIDs sort by creation
// time, which keeps index pages warm on the append-heavy records table.
type ULIDGenerator struct{}

func NewULIDGenerator() *ULIDGenerator { return &ULIDGenerator{} }

func (ULIDGenerator) Generate() string { return ulid.Make().String() }
