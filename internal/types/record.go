package types

import (
	"fmt"

	"fortio.org/safecast"

	"cppmirror/internal/source"
)

// RecordInfo stores metadata for a class/struct type.
type RecordInfo struct {
	Name      source.StringID // unqualified name
	Qualified source.StringID // fully qualified spelling, e.g. "ns::MyClass"
	Decl      source.Span
}

// RegisterRecord allocates a nominal record type slot and returns its TypeID.
// Qualified spellings are unique per interner; re-registering a spelling
// returns the existing TypeID.
func (in *Interner) RegisterRecord(name, qualified source.StringID, decl source.Span) TypeID {
	if id, ok := in.byQName[qualified]; ok {
		return id
	}
	slot := in.appendRecordInfo(RecordInfo{Name: name, Qualified: qualified, Decl: decl})
	id := in.internRaw(Type{Kind: KindRecord, Payload: slot})
	in.byQName[qualified] = id
	return id
}

// RecordInfo returns metadata for the provided record TypeID.
func (in *Interner) RecordInfo(id TypeID) (*RecordInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindRecord {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.records) {
		return nil, false
	}
	return &in.records[tt.Payload], true
}

// RecordByName resolves a fully qualified record spelling to its TypeID.
func (in *Interner) RecordByName(qualified string) (TypeID, bool) {
	nameID := in.Strings.Intern(qualified)
	id, ok := in.byQName[nameID]
	return id, ok
}

func (in *Interner) appendRecordInfo(info RecordInfo) uint32 {
	in.records = append(in.records, info)
	slot, err := safecast.Conv[uint32](len(in.records) - 1)
	if err != nil {
		panic(fmt.Errorf("record info overflow: %w", err))
	}
	return slot
}
