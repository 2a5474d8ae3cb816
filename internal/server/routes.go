package server

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/romanapi/internal/observability"
	"github.com/danmuck/romanapi/internal/roman"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// User-facing messages. Existing clients match on these exact strings.
const (
	MsgRomanRequired  = "Parametro roman requerido."
	MsgRomanInvalid   = "Numero romano invalido."
	MsgArabicRequired = "Parametro arabic requerido."
	MsgArabicInvalid  = "Numero arabico invalido (debe ser entre 1 y 3999)."
	MsgNotFound       = "Endpoint no encontrado."
)

func (s *Server) RegisterRoutes() {
	r := s.router
	r.GET("/", s.help)
	r.GET("/r2a", s.romanToArabic)
	r.GET("/a2r", s.arabicToRoman)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": serviceName,
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"version": version,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": MsgNotFound})
	})
}

func (s *Server) romanToArabic(c *gin.Context) {
	raw := c.Query("roman")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgRomanRequired})
		return
	}

	value, err := s.converter.Decode(raw)
	if err != nil {
		s.conversionFailed(c, observability.DirectionDecode, MsgRomanInvalid, err)
		return
	}
	observability.RecordConversion(s.ID, observability.DirectionDecode, observability.OutcomeOK)
	c.JSON(http.StatusOK, gin.H{"arabic": value.Int()})
}

func (s *Server) arabicToRoman(c *gin.Context) {
	n, ok := parseArabic(c.Query("arabic"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgArabicRequired})
		return
	}

	numeral, err := s.converter.EncodeFloat(n)
	if err != nil {
		s.conversionFailed(c, observability.DirectionEncode, MsgArabicInvalid, err)
		return
	}
	observability.RecordConversion(s.ID, observability.DirectionEncode, observability.OutcomeOK)
	c.JSON(http.StatusOK, gin.H{"roman": numeral.String()})
}

// parseArabic accepts any decimal the converter can judge; ok is false when
// raw is missing or not a number at all. Overflowing input still parses (to
// ±Inf) so the converter reports it as out of range.
func parseArabic(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func (s *Server) conversionFailed(c *gin.Context, direction, msg string, err error) {
	kind := roman.KindOf(err)
	observability.RecordConversion(s.ID, direction, kind.String())
	log.Debug().
		Str("node", s.ID).
		Str("direction", direction).
		Str("kind", kind.String()).
		Err(err).
		Msg("conversion rejected")
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  msg,
		"kind":   kind.String(),
		"detail": err.Error(),
	})
}

func (s *Server) help(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(helpPage))
}

const helpPage = `<!doctype html>
<html><head><meta charset="utf-8" /><title>Conversor Romano ↔ Arábigo</title></head>
<body style="font-family:sans-serif;text-align:center;padding:40px;">
  <h2>Conversor Romano ↔ Arábigo</h2>
  <p>Usa las rutas <b>/r2a?roman=XXIV</b> o <b>/a2r?arabic=2024</b></p>
  <p>Rango válido: 1 a 3999</p>
</body></html>
`
