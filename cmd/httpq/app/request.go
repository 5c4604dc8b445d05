package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/httpq/client"
	"github.com/adamwoolhether/httpq/errs"
	"github.com/adamwoolhether/httpq/query"
	"github.com/adamwoolhether/httpq/schema"
)

// RequestOptions holds options for the verb commands
type RequestOptions struct {
	*GlobalOptions

	// Data is the request body. It is sent as JSON, parsed first if it is a
	// JSON document and encoded as a JSON string otherwise.
	Data string
}

// NewGetCommand creates the get command.
func NewGetCommand(globalOpts *GlobalOptions) *cobra.Command {
	return newVerbCommand(globalOpts, http.MethodGet, false, `  # Fetch a user and require a JSON object back
  httpq get /users/1 --base-url https://example.com/api

  # Fetch a page of users
  httpq get /users -p page=1 -p limit=10 --base-url https://example.com/api`)
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(globalOpts *GlobalOptions) *cobra.Command {
	return newVerbCommand(globalOpts, http.MethodDelete, false, `  httpq delete /users/1 --base-url https://example.com/api`)
}

// NewPostCommand creates the post command.
func NewPostCommand(globalOpts *GlobalOptions) *cobra.Command {
	return newVerbCommand(globalOpts, http.MethodPost, true, `  httpq post /users --data '{"name":"ada"}' --base-url https://example.com/api`)
}

// NewPutCommand creates the put command.
func NewPutCommand(globalOpts *GlobalOptions) *cobra.Command {
	return newVerbCommand(globalOpts, http.MethodPut, true, `  httpq put /users/1 --data '{"name":"ada"}' --base-url https://example.com/api`)
}

// NewPatchCommand creates the patch command.
func NewPatchCommand(globalOpts *GlobalOptions) *cobra.Command {
	return newVerbCommand(globalOpts, http.MethodPatch, true, `  httpq patch /users/1 --data '{"email":"ada@example.com"}' --base-url https://example.com/api`)
}

func newVerbCommand(globalOpts *GlobalOptions, method string, withBody bool, example string) *cobra.Command {
	opts := &RequestOptions{
		GlobalOptions: globalOpts,
	}

	verb := strings.ToLower(method)

	cmd := &cobra.Command{
		Use:     verb + " ENDPOINT",
		Short:   fmt.Sprintf("Send a %s request", method),
		Example: example,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, opts, method, args[0])
		},
	}

	if withBody {
		cmd.Flags().StringVarP(&opts.Data, "data", "d", "",
			"request body, sent as JSON")
	}

	return cmd
}

// runRequest builds the client and the query for method, fetches it once and
// prints the result.
func runRequest(cmd *cobra.Command, opts *RequestOptions, method, endpoint string) error {
	expect, err := expectSchema(opts.Expect)
	if err != nil {
		return err
	}

	params, err := parseParams(opts.Params)
	if err != nil {
		return err
	}

	headers, err := parsePairs("header", opts.Headers)
	if err != nil {
		return err
	}

	c, err := getClient(opts.GlobalOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	req := client.Request{Endpoint: endpoint, Params: params, Headers: headers}

	var q *query.Query[query.NoArgs, any]
	switch method {
	case http.MethodGet:
		q, err = client.Get(c, client.GetRequest[any]{Request: req, Response: expect})
	case http.MethodDelete:
		q, err = client.Delete(c, client.DeleteRequest[any]{Request: req, Response: expect})
	default:
		mreq := client.MutateRequest[any, any]{Request: req, Response: expect}
		if opts.Data != "" {
			mreq.Body = opts.Data
			mreq.BodySchema = schema.Any()
		}

		switch method {
		case http.MethodPost:
			q, err = client.Post(c, mreq)
		case http.MethodPut:
			q, err = client.Put(c, mreq)
		case http.MethodPatch:
			q, err = client.Patch(c, mreq)
		}
	}
	if err != nil {
		return err
	}

	res, err := q.Fetch(cmd.Context(), query.NoArgs{})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

// expectSchema maps an --expect value to a schema.
func expectSchema(name string) (schema.Schema[any], error) {
	switch name {
	case "", "any":
		return schema.Any(), nil
	case "string":
		return erase(schema.String()), nil
	case "number":
		return erase(schema.Number()), nil
	case "int":
		return erase(schema.Int()), nil
	case "bool":
		return erase(schema.Bool()), nil
	default:
		return nil, errs.New(errs.KindConfig, fmt.Sprintf("unknown --expect value %q: want any, string, number, int or bool", name))
	}
}

// erase widens a typed schema to Schema[any].
func erase[T any](s schema.Schema[T]) schema.Schema[any] {
	return schema.Func[any](func(value any) schema.Result[any] {
		r := s.SafeParse(value)
		return schema.Result[any]{Data: r.Data, Issues: r.Issues}
	})
}

func parseParams(raw []string) (client.Params, error) {
	params := make(client.Params, 0, len(raw))
	for _, kv := range raw {
		k, v, err := splitPair("param", kv)
		if err != nil {
			return nil, err
		}
		params = append(params, client.Param{Key: k, Value: v})
	}
	return params, nil
}

func parsePairs(flag string, raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(raw))
	for _, kv := range raw {
		k, v, err := splitPair(flag, kv)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func splitPair(flag, kv string) (string, string, error) {
	k, v, ok := strings.Cut(kv, "=")
	if !ok || k == "" {
		return "", "", errs.New(errs.KindConfig, fmt.Sprintf("invalid --%s %q: want key=value", flag, kv))
	}
	return k, v, nil
}
