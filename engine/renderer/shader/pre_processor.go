// pre_processor.go implements the Oxy WGSL shader pre-processor. It replaces @oxy:
// annotations with registered struct sources or generated binding declarations, so the
// Go-side GPU types and the WGSL structs they marshal into share one definition.
package shader

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// registryEntry pairs a WGSL struct source (embedded from a .wgsl asset file)
// with the WGSL type name used in generated declarations.
type registryEntry struct {
	Source string
	Type   string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry map[AnnotationArg]registryEntry
	declarations   []Annotation
}

// PreProcessor rewrites WGSL source containing @oxy: annotations.
type PreProcessor interface {
	// Process replaces annotations with their WGSL output. The declarations list is reset
	// at the start of each call.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code
	//
	// Returns:
	//   - string: the processed WGSL source
	//   - error: an error if any annotation is malformed or references an unregistered struct
	Process(source string) (string, error)

	// Declarations returns the group annotations collected by the most recent Process call.
	Declarations() []Annotation
}

// PreProcessorOption is a functional option for configuring a PreProcessor.
type PreProcessorOption func(*preProcessor)

// WithStruct registers a WGSL struct under an annotation key.
//
// Parameters:
//   - key: the name used in @oxy:include and @oxy:group annotations
//   - source: the WGSL struct definition
//   - typeName: the WGSL struct name declared by source
//
// Returns:
//   - PreProcessorOption: option function to apply
func WithStruct(key AnnotationArg, source, typeName string) PreProcessorOption {
	return func(p *preProcessor) {
		p.structRegistry[key] = registryEntry{Source: source, Type: typeName}
	}
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the given struct registrations.
//
// Parameters:
//   - options: struct registrations
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(options ...PreProcessorOption) PreProcessor {
	p := &preProcessor{structRegistry: make(map[AnnotationArg]registryEntry)}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", errors.Errorf("line %d: unknown @oxy:include struct %q", a.Line, a.Args[0])
			}
			out = append(out, entry.Source)
		case AnnotationTypeBindingGroup:
			entry, ok := p.structRegistry[a.Args[2]]
			if !ok {
				return "", errors.Errorf("line %d: unknown @oxy:group struct %q", a.Line, a.Args[2])
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				a.Group, a.Binding, addressSpaces[a.Args[0]], a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
