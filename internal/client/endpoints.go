package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// LsOptions mirrors the fs/ls query parameters.
type LsOptions struct {
	Simple        bool
	Recursive     bool
	AbsLimit      int
	ShowAllHidden bool
	NodeLimit     int
}

// Ls lists directory contents under a viking:// URI.
func (c *Client) Ls(ctx context.Context, uri string, opts LsOptions) (any, error) {
	params := url.Values{}
	params.Set("uri", uri)
	params.Set("simple", strconv.FormatBool(opts.Simple))
	params.Set("recursive", strconv.FormatBool(opts.Recursive))
	params.Set("abs_limit", strconv.Itoa(opts.AbsLimit))
	params.Set("show_all_hidden", strconv.FormatBool(opts.ShowAllHidden))
	params.Set("node_limit", strconv.Itoa(opts.NodeLimit))
	return c.Get(ctx, "/api/v1/fs/ls", params)
}

// TreeOptions mirrors the fs/tree query parameters.
type TreeOptions struct {
	AbsLimit      int
	ShowAllHidden bool
	NodeLimit     int
}

// Tree fetches the directory tree under a viking:// URI.
func (c *Client) Tree(ctx context.Context, uri string, opts TreeOptions) (any, error) {
	params := url.Values{}
	params.Set("uri", uri)
	params.Set("abs_limit", strconv.Itoa(opts.AbsLimit))
	params.Set("show_all_hidden", strconv.FormatBool(opts.ShowAllHidden))
	params.Set("node_limit", strconv.Itoa(opts.NodeLimit))
	return c.Get(ctx, "/api/v1/fs/tree", params)
}

// Stat fetches resource metadata.
func (c *Client) Stat(ctx context.Context, uri string) (any, error) {
	return c.Get(ctx, "/api/v1/fs/stat", uriParams(uri))
}

// Mkdir creates a directory.
func (c *Client) Mkdir(ctx context.Context, uri string) (any, error) {
	return c.Post(ctx, "/api/v1/fs/mkdir", map[string]any{"uri": uri})
}

// Rm removes a resource, optionally recursively.
func (c *Client) Rm(ctx context.Context, uri string, recursive bool) (any, error) {
	params := uriParams(uri)
	params.Set("recursive", strconv.FormatBool(recursive))
	return c.Delete(ctx, "/api/v1/fs", params)
}

// Mv moves or renames a resource.
func (c *Client) Mv(ctx context.Context, fromURI, toURI string) (any, error) {
	return c.Post(ctx, "/api/v1/fs/mv", map[string]any{
		"from_uri": fromURI,
		"to_uri":   toURI,
	})
}

// Read fetches full file content (L2).
func (c *Client) Read(ctx context.Context, uri string) (any, error) {
	return c.Get(ctx, "/api/v1/content/read", uriParams(uri))
}

// Abstract fetches abstract content (L0).
func (c *Client) Abstract(ctx context.Context, uri string) (any, error) {
	return c.Get(ctx, "/api/v1/content/abstract", uriParams(uri))
}

// Overview fetches overview content (L1).
func (c *Client) Overview(ctx context.Context, uri string) (any, error) {
	return c.Get(ctx, "/api/v1/content/overview", uriParams(uri))
}

// SearchOptions bounds semantic retrieval.
type SearchOptions struct {
	URI       string
	SessionID string
	Limit     int
	Threshold *float64
}

// Find runs semantic retrieval for a query.
func (c *Client) Find(ctx context.Context, query string, opts SearchOptions) (any, error) {
	body := map[string]any{
		"query": query,
		"uri":   opts.URI,
		"limit": opts.Limit,
	}
	if opts.Threshold != nil {
		body["threshold"] = *opts.Threshold
	}
	return c.Post(ctx, "/api/v1/search/find", body)
}

// Search runs context-aware retrieval for a query.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (any, error) {
	body := map[string]any{
		"query": query,
		"uri":   opts.URI,
		"limit": opts.Limit,
	}
	if opts.SessionID != "" {
		body["session_id"] = opts.SessionID
	}
	if opts.Threshold != nil {
		body["threshold"] = *opts.Threshold
	}
	return c.Post(ctx, "/api/v1/search/search", body)
}

// Grep runs a content pattern search under a URI.
func (c *Client) Grep(ctx context.Context, uri, pattern string, ignoreCase bool) (any, error) {
	params := uriParams(uri)
	params.Set("pattern", pattern)
	params.Set("ignore_case", strconv.FormatBool(ignoreCase))
	return c.Get(ctx, "/api/v1/search/grep", params)
}

// Glob runs a file glob pattern search under a root URI.
func (c *Client) Glob(ctx context.Context, pattern, uri string) (any, error) {
	params := uriParams(uri)
	params.Set("pattern", pattern)
	return c.Get(ctx, "/api/v1/search/glob", params)
}

// NewSession creates a session.
func (c *Client) NewSession(ctx context.Context) (any, error) {
	return c.Post(ctx, "/api/v1/sessions", map[string]any{})
}

// ListSessions lists sessions.
func (c *Client) ListSessions(ctx context.Context) (any, error) {
	return c.Get(ctx, "/api/v1/sessions", nil)
}

// GetSession fetches one session.
func (c *Client) GetSession(ctx context.Context, sessionID string) (any, error) {
	return c.Get(ctx, sessionPath(sessionID, ""), nil)
}

// DeleteSession deletes a session.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) (any, error) {
	return c.Delete(ctx, sessionPath(sessionID, ""), nil)
}

// AddMessage appends one message to a session.
func (c *Client) AddMessage(ctx context.Context, sessionID, role, content string) (any, error) {
	return c.Post(ctx, sessionPath(sessionID, "messages"), map[string]any{
		"role":    role,
		"content": content,
	})
}

// CommitSession archives a session's messages and extracts memories.
func (c *Client) CommitSession(ctx context.Context, sessionID string) (any, error) {
	return c.Post(ctx, sessionPath(sessionID, "commit"), map[string]any{})
}

// AddResourceOptions shapes the resource ingestion request. Target is sent
// as null when empty so the server picks the destination.
type AddResourceOptions struct {
	Target      string
	Reason      string
	Instruction string
	Wait        bool
	Timeout     *float64
}

// AddResource ingests a local path or URL as a resource.
func (c *Client) AddResource(ctx context.Context, path string, opts AddResourceOptions) (any, error) {
	var target any
	if opts.Target != "" {
		target = opts.Target
	}
	body := map[string]any{
		"path":        path,
		"target":      target,
		"reason":      opts.Reason,
		"instruction": opts.Instruction,
		"wait":        opts.Wait,
		"timeout":     optionalFloat(opts.Timeout),
	}
	return c.Post(ctx, "/api/v1/resources", body)
}

// AddSkill ingests a skill from a directory, SKILL.md path, or raw content.
func (c *Client) AddSkill(ctx context.Context, data string, wait bool, timeout *float64) (any, error) {
	body := map[string]any{
		"data":    data,
		"wait":    wait,
		"timeout": optionalFloat(timeout),
	}
	return c.Post(ctx, "/api/v1/skills", body)
}

// ExportPack exports the context under uri as an .ovpack file at to.
func (c *Client) ExportPack(ctx context.Context, uri, to string) (any, error) {
	return c.Post(ctx, "/api/v1/pack/export", map[string]any{
		"uri": uri,
		"to":  to,
	})
}

// ImportPack imports an .ovpack file under a parent URI.
func (c *Client) ImportPack(ctx context.Context, filePath, parent string, force, vectorize bool) (any, error) {
	return c.Post(ctx, "/api/v1/pack/import", map[string]any{
		"file_path": filePath,
		"parent":    parent,
		"force":     force,
		"vectorize": vectorize,
	})
}

// Relations lists relations of a resource.
func (c *Client) Relations(ctx context.Context, uri string) (any, error) {
	return c.Get(ctx, "/api/v1/relations", uriParams(uri))
}

// Link creates relation links from one URI to one or more targets.
func (c *Client) Link(ctx context.Context, fromURI string, toURIs []string, reason string) (any, error) {
	return c.Post(ctx, "/api/v1/relations/link", map[string]any{
		"from_uri": fromURI,
		"to_uris":  toURIs,
		"reason":   reason,
	})
}

// Unlink removes a relation link.
func (c *Client) Unlink(ctx context.Context, fromURI, toURI string) (any, error) {
	return c.DeleteWithBody(ctx, "/api/v1/relations/link", map[string]any{
		"from_uri": fromURI,
		"to_uri":   toURI,
	})
}

// Health runs a quick health check.
func (c *Client) Health(ctx context.Context) (any, error) {
	return c.Get(ctx, "/api/v1/health", nil)
}

// Wait blocks until queued async processing completes, optionally bounded by
// a timeout in seconds.
func (c *Client) Wait(ctx context.Context, timeout *float64) (any, error) {
	body := map[string]any{}
	if timeout != nil {
		body["timeout"] = *timeout
	}
	return c.Post(ctx, "/api/v1/system/wait", body)
}

// ObserverQueue fetches queue status.
func (c *Client) ObserverQueue(ctx context.Context) (any, error) {
	return c.Get(ctx, "/api/v1/observer/queue", nil)
}

// ObserverVikingDB fetches VikingDB status.
func (c *Client) ObserverVikingDB(ctx context.Context) (any, error) {
	return c.Get(ctx, "/api/v1/observer/vikingdb", nil)
}

// ObserverVLM fetches VLM status.
func (c *Client) ObserverVLM(ctx context.Context) (any, error) {
	return c.Get(ctx, "/api/v1/observer/vlm", nil)
}

// ObserverSystem fetches overall system status.
func (c *Client) ObserverSystem(ctx context.Context) (any, error) {
	return c.Get(ctx, "/api/v1/observer/system", nil)
}

// optionalFloat keeps unset timeouts as JSON null rather than 0.
func optionalFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func uriParams(uri string) url.Values {
	params := url.Values{}
	params.Set("uri", uri)
	return params
}

func sessionPath(sessionID, suffix string) string {
	p := fmt.Sprintf("/api/v1/sessions/%s", url.PathEscape(sessionID))
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}
