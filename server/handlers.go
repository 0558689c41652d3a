package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rustyeddy/resample/market"
	"github.com/rustyeddy/resample/pkg/id"
	"github.com/rustyeddy/resample/saver"
	"go.uber.org/zap"
)

// DownloadName is the base name of the attachment returned by the upload
// endpoint.
const DownloadName = "converted_data"

const uploadForm = `<!DOCTYPE html>
<html>
<head><title>Resample bars</title></head>
<body>
<h1>Resample OHLC bars</h1>
<form method="post" enctype="multipart/form-data">
  <p><label>CSV file <input type="file" name="file" accept=".csv" required></label></p>
  <p><label>Timeframe (bars per group) <input type="number" name="timeframe" min="1" value="5" required></label></p>
  <p><label>Format
    <select name="format">
      <option value="json">json</option>
      <option value="csv">csv</option>
      <option value="parquet">parquet</option>
      <option value="msgpack">msgpack</option>
    </select>
  </label></p>
  <p><button type="submit">Convert</button></p>
</form>
</body>
</html>
`

func (s *Server) handleForm(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(uploadForm))
}

// handleResample reads the multipart fields file, timeframe and the
// optional format, and answers with the resampled bars as an attachment.
func (s *Server) handleResample(c *gin.Context) {
	runID := id.New()
	c.Header("X-Run-ID", runID)
	log := s.logger.With(zap.String("run_id", runID))

	limit := s.cfg.Server.MaxUploadBytes
	if c.Request.ContentLength > limit {
		s.fail(c, log, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", limit))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.fail(c, log, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", tooBig.Limit))
			return
		}
		s.fail(c, log, http.StatusBadRequest, fmt.Errorf("file: %w", err))
		return
	}

	groupSize, err := strconv.Atoi(strings.TrimSpace(c.PostForm("timeframe")))
	if err != nil {
		s.fail(c, log, http.StatusBadRequest, errors.New("timeframe must be an integer"))
		return
	}
	if err := market.ValidateGroupSize(groupSize); err != nil {
		s.fail(c, log, http.StatusBadRequest, err)
		return
	}

	enc, err := saver.New(c.DefaultPostForm("format", s.cfg.Output.Format))
	if err != nil {
		s.fail(c, log, http.StatusBadRequest, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.fail(c, log, http.StatusInternalServerError, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	log.Debug("upload received",
		zap.String("file", fh.Filename),
		zap.Int64("size", fh.Size),
		zap.Int("timeframe", groupSize),
		zap.String("format", enc.Extension()),
	)

	bars, err := market.Ingest(f, s.cfg.Columns, s.cfg.IngestOptions())
	if err != nil {
		s.fail(c, log, statusFor(err), err)
		return
	}

	out, err := market.Aggregate(bars, groupSize)
	if err != nil {
		s.fail(c, log, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, saver.FromBars(out)); err != nil {
		s.fail(c, log, http.StatusInternalServerError, fmt.Errorf("encode: %w", err))
		return
	}

	log.Info("resampled upload",
		zap.String("file", fh.Filename),
		zap.Int("bars_in", len(bars)),
		zap.Int("bars_out", len(out)),
		zap.Int("timeframe", groupSize),
	)

	c.Header("Content-Disposition", "attachment; filename="+saver.FileName(DownloadName, enc))
	c.Data(http.StatusOK, enc.ContentType(), buf.Bytes())
}

func (s *Server) fail(c *gin.Context, log *zap.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error("resample failed", zap.Int("status", status), zap.Error(err))
	} else {
		log.Warn("resample rejected", zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor maps core errors to HTTP status codes. Schema, parse and CSV
// structure errors all mean the uploaded table is unusable.
func statusFor(err error) int {
	if errors.Is(err, market.ErrInvalidArgument) {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
