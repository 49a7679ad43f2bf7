package agent

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Library answers the tool calls the model makes while reading a ledger.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// Function is a ledger tool offered to the model.
type Function interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary indexes tools by name. When two tools share a name the first one
// answers.
//
// A call to an unknown tool gets an error response listing the known tools, so
// that the model can pick another one.
func NewLibrary[T Function](tools []T) Library {
	byName := make(map[string]Function, len(tools))
	var names []string
	for _, t := range tools {
		name := t.Declaration().Name
		if _, exists := byName[name]; exists {
			continue
		}
		byName[name] = t
		names = append(names, name)
	}
	known := strings.Join(names, ", ")

	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		if t, ok := byName[call.Name]; ok {
			return t.Call(ctx, call.ID, call.Args)
		}
		return &genai.FunctionResponse{
			ID:   call.ID,
			Name: call.Name,
			Response: map[string]any{
				"error": fmt.Sprintf("no ledger tool named %q, use one of: %s", call.Name, known),
			},
		}
	}
}

// NewDeclaration returns the declarations of tools, in order.
func NewDeclaration[T Function](tools []T) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		result = append(result, t.Declaration())
	}
	return result
}

// Func is a Function made of a declaration and a handler.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }

func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}
