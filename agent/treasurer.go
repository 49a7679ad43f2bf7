package agent

import (
	"context"
	"errors"

	"github.com/etnz/ganan"
	"github.com/etnz/ganan/docs"
	"github.com/etnz/ganan/renderer"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// NewTreasurer creates the expert in charge of the group's ledger.
func NewTreasurer(l *ganan.Ledger, cur, model string) *Expert {
	if model == "" {
		model = DefaultModel
	}
	lib := Tools(l, cur)
	return &Expert{
		Name:      "Treasurer",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the treasurer of a group of people sharing expenses.
				Use the available Tools to read the group's ledger:
				  - the people in the group
				  - the expenses, who paid and for whom
				  - the balance of each person, positive when they are owed money
				  - the payments to make so that everybody is even
				Amounts are in ` + cur + `. Never invent figures, always read them from the Tools.
				Answer briefly, in markdown.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Tools returns the functions that read the ledger.
func Tools(l *ganan.Ledger, cur string) []Function {
	return []Function{
		tool("list_participants", "Lists the people in the group, as a markdown list.",
			func(map[string]any) (string, error) {
				return renderer.Participants(l.Participants()), nil
			}),
		tool("list_expenses", "Lists the expenses as a markdown table: index, payer, amount, description and beneficiaries.",
			func(map[string]any) (string, error) {
				return renderer.Expenses(l, cur), nil
			}),
		tool("get_balances", "Returns how much each person is owed or owes, as a markdown list.",
			func(map[string]any) (string, error) {
				return renderer.Balances(l.CalculateBalances(), cur), nil
			}),
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "get_settlements",
				Description: "Returns the payments to make so that everybody is even, as a markdown list.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"collector": {
							Type:        genai.TypeString,
							Description: "Optional. Route every payment through this person instead of using the group's settings.",
						},
					},
				},
				Response: &genai.Schema{Type: genai.TypeString},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				out, err := settlements(l, cur, args)
				return respond(id, "get_settlements", out, err)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "read_documentation",
				Description: "Returns the user documentation of ganan: how to record expenses, how settlements are computed, where data is stored.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"topic": {
							Type:        genai.TypeString,
							Description: "The topic to read, '*' for all of them.",
							Enum:        []string{"*", "expenses", "settlements", "storage"},
						},
					},
					Required: []string{"topic"},
				},
				Response: &genai.Schema{Type: genai.TypeString},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				topic, _ := args["topic"].(string)
				if topic == "" {
					topic = "*"
				}
				out, err := docs.GetTopics(topic)
				return respond(id, "read_documentation", out, err)
			},
		},
	}
}

func settlements(l *ganan.Ledger, cur string, args map[string]any) (string, error) {
	var s []ganan.Settlement
	var err error
	if collector, ok := args["collector"].(string); ok && collector != "" {
		s, err = l.CollectorSettlements(collector)
	} else {
		s, err = l.CalculateSettlements()
	}
	if errors.Is(err, ganan.ErrNoCollector) {
		return renderer.MissingCollector(), nil
	}
	if err != nil {
		return "", err
	}
	return renderer.Settlements(s, cur), nil
}

// tool creates a Function without parameters returning a string.
func tool(name, description string, f func(args map[string]any) (string, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Response:    &genai.Schema{Type: genai.TypeString},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			out, err := f(args)
			return respond(id, name, out, err)
		},
	}
}

func respond(id, name string, output string, err error) *genai.FunctionResponse {
	if err != nil {
		return &genai.FunctionResponse{
			ID:       id,
			Name:     name,
			Response: map[string]any{"error": err.Error()},
		}
	}
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"output": output},
	}
}
