package errors_test

import (
	"fmt"
	"io"

	"github.com/ajitpratap0/vrem/pkg/errors"
)

// Example demonstrates basic error creation.
func Example() {
	err := errors.New(errors.ErrorTypeConnection, "failed to connect to MongoDB").
		WithDetail("uri", "mongodb://localhost:27017").
		WithDetail("database", "vrem")

	fmt.Println(err.Error())

	// Output:
	// connection: failed to connect to MongoDB
}

// ExampleWrap shows how to wrap existing errors with context.
func ExampleWrap() {
	err := errors.Wrap(io.ErrUnexpectedEOF, errors.ErrorTypeSidecar, "failed to parse sidecar").
		WithDetail("path", "expo/hall/0/sunset.json")

	if errors.IsType(err, errors.ErrorTypeSidecar) {
		fmt.Println("This is a sidecar error")
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		fmt.Println("Cause was an unexpected EOF")
	}

	// Output:
	// This is a sidecar error
	// Cause was an unexpected EOF
}

// ExampleIsType demonstrates that IsType looks through wrapped errors.
func ExampleIsType() {
	notFound := errors.New(errors.ErrorTypeNotFound, "exhibition not found")
	wrapped := errors.Wrap(notFound, errors.ErrorTypeQuery, "failed to load reference")

	fmt.Printf("Is query error: %v\n", errors.IsType(wrapped, errors.ErrorTypeQuery))
	fmt.Printf("Contains not found: %v\n", errors.IsType(wrapped, errors.ErrorTypeNotFound))
	fmt.Printf("Is codec error: %v\n", errors.IsType(wrapped, errors.ErrorTypeCodec))

	// Output:
	// Is query error: true
	// Contains not found: true
	// Is codec error: false
}

// Example_errorChain shows how messages accumulate along a chain.
func Example_errorChain() {
	err := errors.New(errors.ErrorTypeCodec, "expected a document").
		WithDetail("field", "rooms")
	err = errors.Wrap(err, errors.ErrorTypeQuery, "failed to load exhibition").
		WithDetail("name", "expo")

	fmt.Println(err)

	// Output:
	// query: failed to load exhibition: codec: expected a document
}

// Example_details shows how to read the structured fields back.
func Example_details() {
	var target *errors.Error
	err := fmt.Errorf("import failed: %w",
		errors.Newf(errors.ErrorTypeValidation, "cannot place %s exhibit on a wall", "MODEL").
			WithDetail("path", "expo/hall/0/vase.png"))

	if errors.As(err, &target) {
		fmt.Printf("Type: %s\n", target.Type)
		fmt.Printf("Message: %s\n", target.Message)
		fmt.Printf("path: %v\n", target.Details["path"])
	}

	// Output:
	// Type: validation
	// Message: cannot place MODEL exhibit on a wall
	// path: expo/hall/0/vase.png
}
