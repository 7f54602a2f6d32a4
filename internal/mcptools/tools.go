// Package mcptools exposes the prestudy engine as MCP tools.
package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/txus/jjigae/pkg/prestudy"
	"github.com/txus/jjigae/pkg/vocab"
)

// Tools holds what the handlers need.
type Tools struct {
	Engine *prestudy.Engine
	// Record is the learner's study record. nil means nothing is studied yet.
	Record prestudy.StudyRecord

	ExtractDefaults prestudy.Options
	StudyDefaults   prestudy.Options
}

// Register adds the lookup, extract and unknown_words tools to s.
func Register(s *server.MCPServer, t Tools) {
	s.AddTool(lookupTool(), t.lookupHandler())
	s.AddTool(extractTool(), t.extractHandler())
	s.AddTool(unknownWordsTool(), t.unknownWordsHandler())
}

// --- lookup ---

func lookupTool() mcp.Tool {
	return mcp.NewTool("lookup",
		mcp.WithDescription("Look up a Korean base word in the frequency-ranked reference vocabulary."),
		mcp.WithString("word",
			mcp.Description("Dictionary form of the word (e.g. 감정, 가지다)"),
			mcp.Required(),
		),
		mcp.WithNumber("max_vocab",
			mcp.Description("Only consider the N most frequent words. Defaults to the configured size."),
		),
	)
}

func (t Tools) lookupHandler() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		word := strings.TrimSpace(req.GetString("word", ""))
		if word == "" {
			return toolError(fmt.Errorf("word is required"))
		}
		maxVocab := req.GetInt("max_vocab", t.ExtractDefaults.MaxVocab)

		term, ok := t.Engine.Store().Lookup(word, maxVocab)
		if !ok {
			return mcp.NewToolResultText(fmt.Sprintf("%s is not among the %d most frequent words.", word, maxVocab)), nil
		}
		return mcp.NewToolResultText(formatTerm(term)), nil
	}
}

// --- extract ---

func extractTool() mcp.Tool {
	return mcp.NewTool("extract",
		mcp.WithDescription("List the reference-vocabulary words used by a passage, most frequent first."),
		textOption(),
		maxVocabOption(),
		minDifficultyOption(),
	)
}

func (t Tools) extractHandler() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")

		terms, err := t.Engine.Extract(text, options(req, t.ExtractDefaults))
		if err != nil {
			return toolError(err)
		}
		return formatTerms(terms)
	}
}

// --- unknown_words ---

func unknownWordsTool() mcp.Tool {
	return mcp.NewTool("unknown_words",
		mcp.WithDescription("List the words of a passage worth studying: reference-vocabulary words not yet studied in the collection, most frequent first."),
		textOption(),
		maxVocabOption(),
		minDifficultyOption(),
	)
}

func (t Tools) unknownWordsHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")

		terms, err := t.Engine.NewSession(text, t.Record).UnknownWords(ctx, options(req, t.StudyDefaults))
		if err != nil {
			return toolError(err)
		}
		return formatTerms(terms)
	}
}

// --- helpers ---

func textOption() mcp.ToolOption {
	return mcp.WithString("text",
		mcp.Description("Korean passage to analyze"),
		mcp.Required(),
	)
}

func maxVocabOption() mcp.ToolOption {
	return mcp.WithNumber("max_vocab",
		mcp.Description("Only consider the N most frequent words. Defaults to the configured size."),
	)
}

func minDifficultyOption() mcp.ToolOption {
	return mcp.WithString("min_difficulty",
		mcp.Description("Least advanced tier to keep: A (all), B or C."),
	)
}

func options(req mcp.CallToolRequest, defaults prestudy.Options) prestudy.Options {
	return prestudy.Options{
		MaxVocab:      req.GetInt("max_vocab", defaults.MaxVocab),
		MinDifficulty: vocab.Difficulty(strings.ToUpper(req.GetString("min_difficulty", string(defaults.MinDifficulty)))),
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatTerms(terms []vocab.Term) (*mcp.CallToolResult, error) {
	if len(terms) == 0 {
		return mcp.NewToolResultText("No words found."), nil
	}
	var sb strings.Builder
	for _, t := range terms {
		sb.WriteString(formatTerm(t))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatTerm(t vocab.Term) string {
	parts := []string{t.Rank.String(), t.Word, string(t.Difficulty)}
	if t.Hanja != "" {
		parts = append(parts, t.Hanja)
	}
	if t.Notes != "" {
		parts = append(parts, t.Notes)
	}
	if t.Ambiguous {
		parts = append(parts, "(amb)")
	}
	return strings.Join(parts, "  ")
}
