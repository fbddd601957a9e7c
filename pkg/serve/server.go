package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/praetorian-inc/formulaview/pkg/preview"
	"github.com/praetorian-inc/formulaview/pkg/types"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server answers host requests over NDJSON
type Server struct {
	engine  *preview.Engine
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(engine *preview.Engine, in io.Reader, out io.Writer) *Server {
	return &Server{
		engine:  engine,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop. Requests are handled one at a time in
// arrival order.
func (s *Server) Run(ctx context.Context) error {
	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					// No more pending requests
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case "open":
		s.handleDocument(req.Type, req.Payload, s.engine.OnOpen)
	case "change":
		s.handleDocument(req.Type, req.Payload, s.engine.OnChange)
	case "close":
		s.handleClose(req.Payload)
	case "spans":
		s.handleSpans(req.Payload)
	case "hover":
		s.handleHover(req.Payload)
	case "preview":
		s.handlePreview(req.Payload)
	case "shutdown":
		s.send("shutdown", struct{}{})
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	s.send("ready", ReadyData{Version: Version, Marker: s.engine.Config().Marker})
}

type documentFunc func(types.DocumentID, int, string) (*types.DocumentCache, error)

func (s *Server) handleDocument(reqType string, payload json.RawMessage, update documentFunc) {
	var p DocumentPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError(reqType, err.Error())
		return
	}
	if p.URI == "" {
		s.sendError(reqType, "uri is required")
		return
	}

	doc, err := update(types.DocumentID(p.URI), p.Version, p.Text)
	if err != nil {
		s.sendError(reqType, err.Error())
		return
	}
	s.send(reqType, documentData(doc))
}

func (s *Server) handleClose(payload json.RawMessage) {
	var p URIPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("close", err.Error())
		return
	}
	if err := s.engine.OnClose(types.DocumentID(p.URI)); err != nil {
		s.sendError("close", err.Error())
		return
	}
	s.send("close", p)
}

func (s *Server) handleSpans(payload json.RawMessage) {
	var p URIPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("spans", err.Error())
		return
	}
	doc, err := s.engine.Document(types.DocumentID(p.URI))
	if err != nil {
		s.sendError("spans", err.Error())
		return
	}
	s.send("spans", documentData(doc))
}

func (s *Server) handleHover(payload json.RawMessage) {
	var p HoverPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("hover", err.Error())
		return
	}

	id := types.DocumentID(p.URI)
	var (
		fp *preview.FormulaPreview
		ok bool
	)
	if p.Offset != nil {
		fp, ok = s.engine.Hover(id, *p.Offset)
	} else {
		fp, ok = s.engine.HoverAt(id, p.Line, p.Column)
	}
	s.send("hover", HoverData{Found: ok, Preview: fp})
}

func (s *Server) handlePreview(payload json.RawMessage) {
	var p PreviewPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("preview", err.Error())
		return
	}

	directives := p.Directives
	if len(directives) == 0 && p.Text != "" {
		directives = s.engine.Directives(p.Text)
	}
	s.send("preview", s.engine.Preview(p.Expression, directives))
}

func documentData(doc *types.DocumentCache) DocumentData {
	spans := make([]SpanInfo, 0, len(doc.Spans))
	for _, span := range doc.Spans {
		spans = append(spans, SpanInfo{
			Location:   types.NewLocation(doc.Text, span),
			Expression: span.Text(doc.Text),
		})
	}
	directives := doc.Directives
	if directives == nil {
		directives = types.Directives{}
	}
	return DocumentData{
		URI:        string(doc.ID),
		Version:    doc.Version,
		Spans:      spans,
		Directives: directives,
	}
}

func (s *Server) send(reqType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendError(reqType, err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    reqType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
