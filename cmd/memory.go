package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/openviking/ovx/pkg/loader"
)

func init() {
	rootCmd.AddCommand(newAddMemoryCmd())
}

type memoryMessage struct {
	role    string
	content string
}

// newAddMemoryCmd memorizes content in one shot: create a session, add the
// messages, commit. The argument is a plain string (a single user message),
// a JSON {"role":...,"content":...} object, or a JSON array of such objects.
func newAddMemoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-memory <content>",
		Short: "Memorize content in one shot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newCLIContext()
			if err != nil {
				return err
			}
			c := cli.client()
			ctx := cmd.Context()

			sessionResult, err := c.NewSession(ctx)
			if err != nil {
				return err
			}
			sessionID, err := extractSessionID(sessionResult)
			if err != nil {
				return err
			}

			for _, msg := range parseMemoryMessages(args[0]) {
				if _, err := c.AddMessage(ctx, sessionID, msg.role, msg.content); err != nil {
					return err
				}
			}

			commitResult, err := c.CommitSession(ctx, sessionID)
			if err != nil {
				return err
			}

			summary := orderedmap.New[string, any]()
			summary.Set("memories_extracted", memoriesExtracted(commitResult))
			return cli.emit(cmd.OutOrStdout(), summary)
		},
	}
}

// parseMemoryMessages maps the add-memory argument to (role, content) pairs.
// Anything that is not a JSON message object or array of them is a single
// user message carrying the raw input.
func parseMemoryMessages(input string) []memoryMessage {
	decoded, err := loader.DecodeJSONBytes([]byte(input))
	if err != nil {
		return []memoryMessage{{role: "user", content: input}}
	}

	switch v := decoded.(type) {
	case []any:
		msgs := make([]memoryMessage, 0, len(v))
		for _, item := range v {
			msgs = append(msgs, messageFromObject(item))
		}
		return msgs
	case *orderedmap.OrderedMap[string, any]:
		if _, hasRole := v.Get("role"); hasRole {
			return []memoryMessage{messageFromObject(v)}
		}
		if _, hasContent := v.Get("content"); hasContent {
			return []memoryMessage{messageFromObject(v)}
		}
		return []memoryMessage{{role: "user", content: input}}
	default:
		return []memoryMessage{{role: "user", content: input}}
	}
}

func messageFromObject(v any) memoryMessage {
	msg := memoryMessage{role: "user"}
	obj, ok := v.(*orderedmap.OrderedMap[string, any])
	if !ok {
		return msg
	}
	if role, ok := obj.Get("role"); ok {
		if s, ok := role.(string); ok && s != "" {
			msg.role = s
		}
	}
	if content, ok := obj.Get("content"); ok {
		if s, ok := content.(string); ok {
			msg.content = s
		}
	}
	return msg
}

func extractSessionID(result any) (string, error) {
	if obj, ok := result.(*orderedmap.OrderedMap[string, any]); ok {
		if v, ok := obj.Get("session_id"); ok {
			if s, ok := v.(string); ok && s != "" {
				return s, nil
			}
		}
	}
	return "", fmt.Errorf("failed to get session_id from new session response")
}

func memoriesExtracted(commitResult any) int64 {
	obj, ok := commitResult.(*orderedmap.OrderedMap[string, any])
	if !ok {
		return 0
	}
	v, ok := obj.Get("memories_extracted")
	if !ok {
		return 0
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i
		}
	}
	return 0
}
