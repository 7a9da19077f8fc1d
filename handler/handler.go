// Package handler implements the transport-agnostic operation handler
// (spec.md §4.6) shared by HTTP and any other front end (e.g. an MCP
// tool bridge).
package handler

import (
	"context"
	"encoding/json"

	"github.com/xraph/scimcore/patch"
	"github.com/xraph/scimcore/resource"
	"github.com/xraph/scimcore/scimerr"
	"github.com/xraph/scimcore/server"
	"github.com/xraph/scimcore/storage"
)

// Verb identifies the requested operation.
type Verb string

const (
	VerbCreate  Verb = "create"
	VerbRead    Verb = "read"
	VerbReplace Verb = "replace"
	VerbPatch   Verb = "patch"
	VerbDelete  Verb = "delete"
	VerbList    Verb = "list"
)

// Request is the uniform shape every front end translates its native
// protocol into.
type Request struct {
	Verb            Verb
	ResourceType    string
	ID              string
	Body            map[string]any
	ExpectedVersion string
	TenantID        string
	ListQuery       storage.Query
}

// Response is the uniform shape returned to every front end.
type Response struct {
	Success   bool
	Data      any
	Metadata  map[string]any
	Error     *scimerr.Error
	ErrorCode string
}

// Handler dispatches Requests to a Server.
type Handler struct {
	server *server.Server
}

func New(s *server.Server) *Handler {
	return &Handler{server: s}
}

// Handle dispatches req to the appropriate Server method and shapes
// the result into a Response, never returning a raw error: failures
// are carried in Response.Error.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	switch req.Verb {
	case VerbCreate:
		doc, err := h.server.Create(ctx, req.TenantID, req.ResourceType, req.Body)
		return respond(doc, err)
	case VerbRead:
		doc, err := h.server.Get(ctx, req.TenantID, req.ResourceType, req.ID)
		return respond(doc, err)
	case VerbReplace:
		doc, err := h.server.Replace(ctx, req.TenantID, req.ResourceType, req.ID, req.Body, req.ExpectedVersion)
		return respond(doc, err)
	case VerbPatch:
		return h.handlePatch(ctx, req)
	case VerbDelete:
		err := h.server.Delete(ctx, req.TenantID, req.ResourceType, req.ID, req.ExpectedVersion)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Success: true, Metadata: map[string]any{}}
	case VerbList:
		docs, total, err := h.server.List(ctx, req.TenantID, req.ResourceType, req.ListQuery)
		if err != nil {
			return errorResponse(err)
		}
		return Response{
			Success: true,
			Data:    docs,
			Metadata: map[string]any{
				"totalResults": total,
				"startIndex":   req.ListQuery.StartIndex,
				"itemsPerPage": len(docs),
			},
		}
	default:
		return errorResponse(scimerr.MalformedRequest("unrecognised verb: " + string(req.Verb)))
	}
}

func (h *Handler) handlePatch(ctx context.Context, req Request) Response {
	raw, err := marshalBody(req.Body)
	if err != nil {
		return errorResponse(err)
	}
	parsed, err := patch.Parse(raw)
	if err != nil {
		return errorResponse(err)
	}
	doc, err := h.server.Patch(ctx, req.TenantID, req.ResourceType, req.ID, parsed, req.ExpectedVersion)
	return respond(doc, err)
}

func respond(doc map[string]any, err error) Response {
	if err != nil {
		return errorResponse(err)
	}
	return Response{
		Success:  true,
		Data:     doc,
		Metadata: metadataFor(doc),
	}
}

func errorResponse(err error) Response {
	se, ok := err.(*scimerr.Error)
	if !ok {
		se = scimerr.MalformedRequest(err.Error())
	}
	return Response{
		Success:   false,
		Error:     se,
		ErrorCode: se.Code,
		Metadata:  map[string]any{},
	}
}

func metadataFor(doc map[string]any) map[string]any {
	meta, _ := doc["meta"].(map[string]any)
	version, _ := meta["version"].(string)
	return map[string]any{
		"version": version,
		"etag":    resource.ETag(version),
	}
}

func marshalBody(body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, scimerr.MalformedRequest("request body is not serialisable: " + err.Error())
	}
	return b, nil
}
