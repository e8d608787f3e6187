package dataapi

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: any plain-string _id is rewritten to the tagged form, and
// the rewrite never touches the caller's map.
func TestProperty_NormalizeRewritesStringID(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	properties := gopter.NewProperties(params)

	properties.Property("string _id becomes tagged identifier", prop.ForAll(
		func(id string) bool {
			filter := Filter{"_id": id}
			normalized := normalizeFilter(filter)

			tagged, ok := normalized["_id"].(ObjectID)
			if !ok || tagged.Value != id {
				return false
			}
			original, stillString := filter["_id"].(string)
			return stillString && original == id
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// Property: filters without a top-level _id pass through untouched.
func TestProperty_NormalizePassesThroughWithoutID(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	properties := gopter.NewProperties(params)

	properties.Property("filters without _id are unchanged", prop.ForAll(
		func(fields map[string]string) bool {
			filter := make(Filter, len(fields))
			for key, value := range fields {
				filter[key] = value
			}
			delete(filter, "_id")
			return reflect.DeepEqual(normalizeFilter(filter), filter)
		},
		gen.MapOf(gen.Identifier(), gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// Property: a StatusError message always carries its numeric code.
func TestProperty_StatusErrorCarriesCode(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50
	properties := gopter.NewProperties(params)

	properties.Property("message contains the status code", prop.ForAll(
		func(status int) bool {
			err := &StatusError{Action: actionFind, StatusCode: status}
			return strings.Contains(err.Error(), strconv.Itoa(status))
		},
		gen.IntRange(300, 599),
	))

	properties.TestingRun(t)
}
