package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/danmuck/mossdecode/internal/observability"
	"github.com/danmuck/mossdecode/internal/protocol"
	"github.com/danmuck/mossdecode/internal/protocol/frame"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ErrBodyTooLarge    = errors.New("server: request body too large")
	ErrInvalidArgument = errors.New("server: invalid argument")
)

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Started).String(),
			"node":    s.Name,
			"version": version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1/decode")
	v1.POST("/event", s.decodeEvent)
	v1.POST("/events", s.decodeEvents)
	v1.POST("/skip", s.decodeSkipTake)
}

func (s *Server) decodeEvent(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}
	start := time.Now()
	p, rest, err := frame.DecodeEvent(body)
	var packets []protocol.Packet
	if err == nil {
		packets = []protocol.Packet{p}
	}
	observability.RecordDecode("event", packets, len(body), time.Since(start), err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"packet":        p,
		"trailer_index": len(body) - len(rest) - 1,
		"unprocessed":   len(rest),
	})
}

func (s *Server) decodeEvents(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}
	op, decode := "events", frame.DecodeMultiple
	if lenient, _ := strconv.ParseBool(c.Query("lenient")); lenient {
		op, decode = "events_lenient", frame.DecodeMultipleLenient
	}
	start := time.Now()
	packets, last, err := decode(body)
	observability.RecordDecode(op, packets, len(body), time.Since(start), err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"packets":            packets,
		"last_trailer_index": last,
	})
}

func (s *Server) decodeSkipTake(c *gin.Context) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		s.fail(c, err)
		return
	}
	take, err := queryInt(c, "take", 1)
	if err != nil {
		s.fail(c, err)
		return
	}
	body, ok := s.readBody(c)
	if !ok {
		return
	}
	start := time.Now()
	packets, last, err := frame.DecodeSkipTake(body, skip, take)
	observability.RecordDecode("skip_take", packets, len(body), time.Since(start), err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"packets":            packets,
		"last_trailer_index": last,
	})
}

func (s *Server) readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		s.fail(c, err)
		return nil, false
	}
	return body, true
}

func (s *Server) fail(c *gin.Context, err error) {
	kind := observability.ErrorKind(err)
	status := http.StatusUnprocessableEntity
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		kind, status = "body_too_large", http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidArgument):
		kind, status = "invalid_argument", http.StatusBadRequest
	case errors.Is(err, protocol.ErrInsufficientBytes), errors.Is(err, frame.ErrNegativeCount):
		status = http.StatusBadRequest
	case kind == "other":
		status = http.StatusInternalServerError
	}
	c.Set(observability.ErrorKindKey, kind)

	resp := gin.H{"error": err.Error(), "kind": kind}
	var perr *protocol.ParseError
	if errors.As(err, &perr) {
		resp["parse_kind"] = perr.Kind.String()
		resp["frame"] = perr.Frame
		resp["index"] = perr.Index
		resp["offset"] = perr.Offset()
		if perr.Window != "" {
			resp["window"] = perr.Window
		}
	}
	c.JSON(status, resp)
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidArgument, name, raw)
	}
	return v, nil
}
