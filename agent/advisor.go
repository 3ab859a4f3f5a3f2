package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/matakite/kourasync"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user runs a tool that mirrors his Koura Wealth KiwiSaver account into a Ghostfolio
			instance. He is here primarily to understand his funds, the symbols they are synced under,
			and what the sync does.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor returns an expert grounded in Google Search for fund and market
// questions.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is an expert financial advisor,
		very well aware of KiwiSaver providers, managed funds and markets,
		and of the latest news about them.
		Ask the Advisor whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in personal finance, you can search and find about anything related to
			KiwiSaver providers, managed funds, markets and financial institutions. You leverage
			Google Search to ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAnalyst returns an expert that knows the synced funds and their symbols.
func NewAnalyst() *Expert {
	lib := []Function{Funds}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He knows which Koura Wealth funds are synced and
		under which Ghostfolio symbol each one is recorded.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's synced portfolio.
				You know how to use the Tools to list the funds the sync knows about, their codes
				and the ledger symbols they are recorded under. They might ask you questions with
				approximative fund names, pardon their language and figure out what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// Funds lists the known fund mappings.
var Funds = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Funds",
		Description: `Funds lists all the Koura Wealth funds the sync knows about, with their
		portal fund code, their display name and the Ghostfolio symbol they are recorded under.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of all the known funds with code, name and symbol.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		return &genai.FunctionResponse{
			ID:   id,
			Name: "Funds",
			Response: map[string]any{
				"output": fundsMarkdown(kourasync.NewFundMapping()),
			},
		}
	},
}

// private implementation to render the fund table.
func fundsMarkdown(mapping *kourasync.FundMapping) string {
	var b strings.Builder
	fmt.Fprintln(&b, "| Code | Name | Symbol |")
	fmt.Fprintln(&b, "|------|------|--------|")
	for _, code := range mapping.Codes() {
		symbol, _ := mapping.Symbol(code)
		fmt.Fprintf(&b, "| %s | %s | %s |\n", code, mapping.Name(code), symbol)
	}
	return b.String()
}
