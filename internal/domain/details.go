package domain

import "maps"

// Detail keys of the FLIGHT variant as they appear on the wire and in storage.
const (
	DetailFlightNumber = "flightNumber"
	DetailFrom         = "from"
	DetailTo           = "to"

	// legacyFlightNumber is the key older stored itineraries used.
	legacyFlightNumber = "flightNr"
)

// FlightDetails is the typed field set of a FLIGHT item. A nil field was
// never set and is omitted from Map; an empty one was set to "".
type FlightDetails struct {
	Number *string
	From   *string
	To     *string
}

// Details holds the variant-specific data of an itinerary item. Exactly the
// field matching the item's ActivityType is populated; keys with no typed
// home for that variant are kept in Extra.
//
// At the storage and wire boundary Details is a single flat map; use
// DetailsFromMap and Map to convert.
type Details struct {
	Flight *FlightDetails
	Extra  map[string]any
}

// DetailsFromMap builds the tagged value for variant t from a flat map.
// Unknown keys, and keys that are typed only for other variants, are kept
// in Extra.
func DetailsFromMap(t ActivityType, m map[string]any) Details {
	var d Details
	rest := make(map[string]any, len(m))
	maps.Copy(rest, m)

	if t == ActivityFlight {
		f := FlightDetails{}
		var seen bool
		if v, ok := takeString(rest, legacyFlightNumber); ok {
			f.Number, seen = &v, true
		}
		if v, ok := takeString(rest, DetailFlightNumber); ok {
			f.Number, seen = &v, true
		}
		if v, ok := takeString(rest, DetailFrom); ok {
			f.From, seen = &v, true
		}
		if v, ok := takeString(rest, DetailTo); ok {
			f.To, seen = &v, true
		}
		if seen {
			d.Flight = &f
		}
	}

	if len(rest) > 0 {
		d.Extra = rest
	}
	return d
}

// takeString removes key from m and returns its value when it is a string.
// Non-string values stay in m.
func takeString(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	delete(m, key)
	return s, true
}

// Map flattens d into the storage representation. Only typed fields that
// were set appear, so DetailsFromMap(t, m).Map() equals m. The result is
// never nil.
func (d Details) Map() map[string]any {
	out := make(map[string]any, len(d.Extra)+3)
	maps.Copy(out, d.Extra)
	if f := d.Flight; f != nil {
		putString(out, DetailFlightNumber, f.Number)
		putString(out, DetailFrom, f.From)
		putString(out, DetailTo, f.To)
	}
	return out
}

func putString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

// Value returns the field's text, "" when unset.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Merge overlays fields onto d for variant t and returns the result.
// Keys absent from fields keep their current values.
func (d Details) Merge(t ActivityType, fields map[string]any) Details {
	m := d.Map()
	maps.Copy(m, fields)
	return DetailsFromMap(t, m)
}

// Clone returns a deep copy of the typed fields and a shallow copy of Extra.
func (d Details) Clone() Details {
	var out Details
	if d.Flight != nil {
		out.Flight = &FlightDetails{
			Number: cloneString(d.Flight.Number),
			From:   cloneString(d.Flight.From),
			To:     cloneString(d.Flight.To),
		}
	}
	if d.Extra != nil {
		out.Extra = maps.Clone(d.Extra)
	}
	return out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IsZero reports whether d carries no data at all.
func (d Details) IsZero() bool {
	return d.Flight == nil && len(d.Extra) == 0
}
