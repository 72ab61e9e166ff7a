package urdf

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"

	"mobility-urdf/internal/failure"
)

//go:embed urdf.xsd
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schema     *xsd.Schema
	schemaErr  error
)

func loadSchema() (*xsd.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = xsd.Load(schemaFS, "urdf.xsd")
	})
	return schema, schemaErr
}

// Validate checks an encoded document against the embedded URDF schema:
// element nesting and order, required attributes, numeric vectors, joint
// types, unique names and joint parent/child references to declared links.
func Validate(r io.Reader) error {
	s, err := loadSchema()
	if err != nil {
		return fmt.Errorf("urdf: load schema: %w", err)
	}
	if err := s.Validate(r); err != nil {
		if violations, ok := xsderrors.AsValidations(err); ok {
			msgs := make([]string, 0, len(violations))
			for _, v := range violations {
				msgs = append(msgs, v.Error())
			}
			return failure.Wrap(failure.SchemaViolation, err, "%d violation(s): %s", len(violations), strings.Join(msgs, "; "))
		}
		return failure.Wrap(failure.SchemaViolation, err, "document")
	}
	return nil
}

// ValidateBytes is Validate over an in-memory document.
func ValidateBytes(doc []byte) error {
	return Validate(bytes.NewReader(doc))
}
