package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestQuiz_ViewHidesAnswerKeyAndCopiesOptions(t *testing.T) {
	q := &Quiz{
		ID:            3,
		Category:      "고속도로",
		Question:      "q?",
		Options:       []string{"a", "b"},
		CorrectAnswer: 1,
		Explanation:   "because",
	}

	v := q.View()
	want := QuizView{ID: 3, Category: "고속도로", Question: "q?", Options: []string{"a", "b"}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}

	v.Options[0] = "changed"
	assert.Equal(t, "a", q.Options[0])
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "kim", User{Username: "kim", Email: "k@example.com"}.DisplayName())
	assert.Equal(t, "k@example.com", User{Email: "k@example.com"}.DisplayName())
}

func TestTimestamp_Unmarshal(t *testing.T) {
	var v struct {
		A Timestamp `json:"a"`
		B Timestamp `json:"b"`
		C Timestamp `json:"c"`
	}
	err := json.Unmarshal([]byte(`{"a":"2024-05-01T09:00:00","b":"2024-05-01T09:00:00.123456+09:00","c":null}`), &v)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	assert.True(t, v.A.Equal(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, 123456000, v.B.Nanosecond())
	assert.True(t, v.C.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"a":"yesterday"}`), &v))
}
