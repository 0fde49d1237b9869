package object_test

import (
	"bytes"
	"testing"

	"github.com/Nivl/ugit/ginternals/object"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: identical (type, content) pairs share an ID, different
// ones don't
func TestContentAddressing(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("same content gives the same id", prop.ForAll(
		func(content string) bool {
			a := object.New(object.TypeBlob, []byte(content))
			b := object.New(object.TypeBlob, []byte(content))
			return a.ID() == b.ID()
		},
		gen.AnyString(),
	))

	properties.Property("different content gives different ids", prop.ForAll(
		func(a, b string) bool {
			if a == b {
				return true
			}
			return object.New(object.TypeBlob, []byte(a)).ID() != object.New(object.TypeBlob, []byte(b)).ID()
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("the type is part of the id", prop.ForAll(
		func(content string) bool {
			return object.New(object.TypeBlob, []byte(content)).ID() != object.New(object.TypeTree, []byte(content)).ID()
		},
		gen.AnyString(),
	))

	properties.Property("frames can be parsed back", prop.ForAll(
		func(content string) bool {
			o := object.New(object.TypeBlob, []byte(content))
			parsed, err := object.NewFromFrame(o.Frame())
			if err != nil {
				return false
			}
			return parsed.ID() == o.ID() && bytes.Equal(parsed.Bytes(), o.Bytes())
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
