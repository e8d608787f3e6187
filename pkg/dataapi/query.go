package dataapi

// Filter represents field-based matching criteria. A field mapped to a
// literal value matches by equality; a field mapped to an operator map
// matches by that operator.
type Filter map[string]any

// Query operator names accepted inside a Filter operator map.
const (
	OpEq     = "$eq"
	OpNe     = "$ne"
	OpGt     = "$gt"
	OpGte    = "$gte"
	OpLt     = "$lt"
	OpLte    = "$lte"
	OpIn     = "$in"
	OpNin    = "$nin"
	OpExists = "$exists"
)

// Eq matches fields equal to value.
func Eq(value any) map[string]any { return map[string]any{OpEq: value} }

// Ne matches fields not equal to value.
func Ne(value any) map[string]any { return map[string]any{OpNe: value} }

// Gt matches fields greater than value.
func Gt(value any) map[string]any { return map[string]any{OpGt: value} }

// Gte matches fields greater than or equal to value.
func Gte(value any) map[string]any { return map[string]any{OpGte: value} }

// Lt matches fields less than value.
func Lt(value any) map[string]any { return map[string]any{OpLt: value} }

// Lte matches fields less than or equal to value.
func Lte(value any) map[string]any { return map[string]any{OpLte: value} }

// In matches fields whose value is one of values.
func In(values ...any) map[string]any { return map[string]any{OpIn: values} }

// Nin matches fields whose value is none of values.
func Nin(values ...any) map[string]any { return map[string]any{OpNin: values} }

// Exists matches fields by presence or absence.
func Exists(exists bool) map[string]any { return map[string]any{OpExists: exists} }

// Projection selects which document fields the service returns.
// Map a field to 1 to include it or 0 to exclude it. Mixing inclusion
// and exclusion is rejected by the service, not locally.
type Projection map[string]int

// Sort orders results by field. 1 sorts ascending, -1 descending.
type Sort map[string]int

// Sort directions.
const (
	Ascending  = 1
	Descending = -1
)

// Update is a partial-document update specification, passed through to
// the service verbatim.
type Update map[string]any

// Pipeline is an ordered sequence of aggregation stages. Stages are
// opaque to the client and transmitted verbatim.
type Pipeline []map[string]any

// ObjectID tags a string as the database's internal object-identifier
// type. The service rejects plain strings for identifier fields, so
// identifiers crossing the wire must carry this wrapper.
type ObjectID struct {
	Value string `json:"objectId"`
}

// normalizeFilter prepares a filter for transmission. A nil filter
// becomes the match-all empty filter. A top-level _id entry holding a
// plain string is rewritten to the tagged ObjectID form; the rewrite
// copies so the caller's map is never mutated. _id values nested inside
// logical operators are deliberately left alone.
func normalizeFilter(filter Filter) Filter {
	if filter == nil {
		return Filter{}
	}
	id, ok := filter["_id"].(string)
	if !ok {
		return filter
	}
	normalized := make(Filter, len(filter))
	for field, value := range filter {
		normalized[field] = value
	}
	normalized["_id"] = ObjectID{Value: id}
	return normalized
}
