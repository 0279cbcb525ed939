package ir

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/hzsweers/apollo-android/internal/otel"
	"github.com/hzsweers/apollo-android/internal/reqid"
	"github.com/hzsweers/apollo-android/internal/schema"
)

var tracer = otel.Tracer("apollo-android/ir")

// Build compiles every operation and fragment document Discovery reports
// into a CodeGenerationIR, validating and flattening each against sch.
// It fails fast: the first ParseException, GraphQLDocumentParseException or
// GraphQLParseException encountered aborts the build and is returned as-is,
// with no partial IR.
func Build(ctx context.Context, sch *schema.Schema, disc Discovery) (*CodeGenerationIR, error) {
	if _, ok := reqid.FromContext(ctx); !ok {
		ctx, _ = reqid.NewContext(ctx)
	}
	buildID, _ := reqid.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "ir.build")
	span.SetAttributes(attribute.String("build.id", buildID))
	defer span.End()

	operations, fragments, err := link(ctx, sch, disc)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	_, collectSpan := tracer.Start(ctx, "ir.collect_types")
	typesUsed := collectTypesUsed(sch, operations, fragments)
	collectSpan.SetAttributes(attribute.Int("types_used.count", len(typesUsed)))
	collectSpan.End()

	span.SetAttributes(
		attribute.Int("operations.count", len(operations)),
		attribute.Int("fragments.count", len(fragments)),
	)

	return &CodeGenerationIR{
		Operations: operations,
		Fragments:  fragments,
		TypesUsed:  typesUsed,
	}, nil
}

func link(ctx context.Context, sch *schema.Schema, disc Discovery) ([]*Operation, []*Fragment, error) {
	_, span := tracer.Start(ctx, "ir.link")
	defer span.End()
	l := &linker{schema: sch}
	return l.link(ctx, disc)
}
