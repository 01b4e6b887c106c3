package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strconv"

	"github.com/dmitrijs2005/drivequiz/internal/client/models"
)

// GenerateQuiz uploads the staged video with its category and returns the
// generated quiz. The file is streamed, never held in memory.
func (c *HTTPClient) GenerateQuiz(ctx context.Context, media models.Media, category string) (*models.Quiz, error) {
	f, err := os.Open(media.Path)
	if err != nil {
		return nil, fmt.Errorf("open media: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer f.Close()
		pw.CloseWithError(writeQuizForm(mw, f, media, category))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("quiz/generate", nil), pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	c.log.Info(ctx, "uploading media", "name", media.Name, "size", media.Size, "category", category)

	var out generateResponse
	if err := c.send(req, &out); err != nil {
		_ = pr.Close()
		return nil, err
	}
	return out.Quiz, nil
}

func writeQuizForm(mw *multipart.Writer, r io.Reader, media models.Media, category string) error {
	if err := mw.WriteField("category", category); err != nil {
		return err
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="video"; filename=%q`, media.Name))
	ct := media.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	return mw.Close()
}

// SubmitAnswer records the selected option. Only the status matters; the
// acknowledgement body is decoded when it is usable.
func (c *HTTPClient) SubmitAnswer(ctx context.Context, quizID int64, answer int) (*models.AnswerAck, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	payload := struct {
		Answer int `json:"answer"`
	}{Answer: answer}

	path := "quiz/" + strconv.FormatInt(quizID, 10) + "/answer"
	req, err := c.newJSONRequest(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return nil, err
	}
	data, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}

	ack := &models.AnswerAck{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, ack); err != nil {
			c.log.Debug(ctx, "ignoring unreadable answer acknowledgement", "quiz_id", quizID, "err", err)
			*ack = models.AnswerAck{}
		}
	}
	return ack, nil
}

func (c *HTTPClient) ListQuizzes(ctx context.Context, skip, limit int) ([]models.Quiz, error) {
	q := url.Values{}
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out quizList
	if err := c.doJSON(ctx, http.MethodGet, "quiz/", q, nil, &out); err != nil {
		return nil, err
	}
	quizzes := make([]models.Quiz, len(out))
	for i := range out {
		quizzes[i] = out[i].Quiz
	}
	return quizzes, nil
}

func (c *HTTPClient) GetQuiz(ctx context.Context, id int64) (*models.Quiz, error) {
	var out quizEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "quiz/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Quiz, nil
}

func (c *HTTPClient) CreateQuiz(ctx context.Context, in models.QuizCreate) (*models.Quiz, error) {
	var out quizEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "quiz/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out.Quiz, nil
}
