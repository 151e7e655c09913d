package models

// IdentifierKind tells which variant a PlaceIdentifier holds.
type IdentifierKind int

const (
	// KindCID is a provider-internal numeric place id in decimal form.
	KindCID IdentifierKind = iota + 1
	// KindPlaceID is an opaque place-id token.
	KindPlaceID
)

func (k IdentifierKind) String() string {
	switch k {
	case KindCID:
		return "cid"
	case KindPlaceID:
		return "place_id"
	default:
		return "unknown"
	}
}

// PlaceIdentifier is a CID or place-id token pulled out of a URL.
type PlaceIdentifier struct {
	Kind  IdentifierKind // Kind selects the lookup key.
	Value string         // Value is the decimal CID or the place-id token.
}

// CID builds a CID identifier from its decimal representation.
func CID(decimal string) PlaceIdentifier {
	return PlaceIdentifier{Kind: KindCID, Value: decimal}
}

// PlaceID builds a place-id identifier.
func PlaceID(token string) PlaceIdentifier {
	return PlaceIdentifier{Kind: KindPlaceID, Value: token}
}
