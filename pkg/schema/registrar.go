package schema

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/sr"
)

var _ SchemaIdentifier = (*Registrar)(nil)

// SchemaCreator is the part of [sr.Client] a Registrar needs.
type SchemaCreator interface {
	CreateSchema(
		ctx context.Context, subject string, s sr.Schema,
	) (sr.SubjectSchema, error)
}

// A Registrar registers Avro schemas in the Schema Registry. Registering an
// already known schema returns its existing id.
type Registrar struct {
	client SchemaCreator
}

func NewRegistrar(client SchemaCreator) Registrar {
	return Registrar{client: client}
}

// NewRegistryClient connects to the registry at urls.
func NewRegistryClient(urls []string) (*sr.Client, error) {
	const op = "schema.NewRegistryClient"

	cl, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cl, nil
}

func (r Registrar) DetermineID(
	ctx context.Context, subject, schemaText string,
) (int, error) {
	const op = "Registrar.DetermineID"

	ss, err := r.client.CreateSchema(
		ctx, subject, sr.Schema{Schema: schemaText, Type: sr.TypeAvro},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	slog.Debug(
		"schema registered",
		"op", op, "subject", subject, "id", ss.ID, "version", ss.Version,
	)
	return ss.ID, nil
}
