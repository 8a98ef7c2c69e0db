package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tutordesk/internal/config"
)

func newLearner(t *testing.T, h http.HandlerFunc, opts ...Option) *Learner {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	rc := config.NewRoleContext(config.RoleLearner, "", srv.URL)
	return NewLearner(NewClient(opts...), rc)
}

func TestGenerateQuiz_SendsModeAndQuizID(t *testing.T) {
	var got map[string]any
	l := newLearner(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/student/quiz/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`[{"id":1,"question":"2+2?","option_a":"3","option_b":"4","option_c":"5","option_d":"6","correct_option":"b"}]`))
	})

	id := 7
	qs, err := l.GenerateQuiz(context.Background(), GenerateRequest{Mode: ModeManual, QuizID: &id})
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "4", qs[0].OptionB)
	assert.Equal(t, "manual", got["mode"])
	assert.EqualValues(t, 7, got["quiz_id"])
}

func TestGenerateQuiz_OmitsQuizIDForSmart(t *testing.T) {
	var raw []byte
	l := newLearner(t, func(w http.ResponseWriter, r *http.Request) {
		var m json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		raw = m
		w.Write([]byte(`[]`))
	})

	qs, err := l.GenerateQuiz(context.Background(), GenerateRequest{Mode: ModeSmart})
	require.NoError(t, err)
	assert.Empty(t, qs)
	assert.JSONEq(t, `{"mode":"smart"}`, string(raw))
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    Kind
	}{
		{
			name: "non-2xx with error body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"Question not found"}`))
			},
			kind: KindStatus,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>login</html>`))
			},
			kind: KindDecode,
		},
		{
			name: "schema mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"overall_accuracy":"high"}`))
			},
			kind: KindDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLearner(t, tt.handler)
			_, err := l.FetchProgress(context.Background())
			require.Error(t, err)
			assert.True(t, IsKind(err, tt.kind), "expected %s, got %v", tt.kind, err)
		})
	}
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	l := newLearner(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Question not found"}`))
	})

	_, err := l.SubmitAnswer(context.Background(), SubmitAnswerRequest{QuestionID: 9, SelectedOption: "a", Mode: ModeSmart})
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusBadRequest, fe.Status)
	assert.Equal(t, "Question not found", fe.Message)
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	l := NewLearner(NewClient(), config.NewRoleContext(config.RoleLearner, "", url))
	_, err := l.FetchLearningPath(context.Background())
	assert.True(t, IsKind(err, KindNetwork), "expected network error, got %v", err)
}

func TestObserverSeesEveryRequest(t *testing.T) {
	var mu sync.Mutex
	var seen []RequestInfo
	l := newLearner(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}, WithObserver(func(info RequestInfo) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, info)
	}))

	_, err := l.ListFixedSets(context.Background())
	require.NoError(t, err)
	_, err = l.FetchLearningPath(context.Background())
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, http.MethodGet, seen[0].Method)
	assert.Contains(t, seen[0].Endpoint, "/api/student/manual-quizzes")
	assert.Contains(t, seen[1].Endpoint, "/api/student/learning-path")
	assert.False(t, seen[1].At.Before(seen[0].At))
}

func TestCoach_PatternEndpoints(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodGet {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`{"status":"created"}`))
	}))
	defer srv.Close()

	c := NewCoach(NewClient(), config.NewRoleContext(config.RoleCoach, "", srv.URL))
	ctx := context.Background()

	_, err := c.ListSubmissions(ctx, 4)
	require.NoError(t, err)
	require.NoError(t, c.AddQuizQuestion(ctx, 2, AuthoredQuestion{Question: "q", CorrectOption: "a"}))

	assert.Equal(t, []string{
		"GET /api/mentor/assignments/4/submissions",
		"POST /api/mentor/quizzes/2/questions",
	}, paths)
}

func TestConcurrentGetsShareOneRoundTrip(t *testing.T) {
	var hits atomic.Int32
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	l := newLearner(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case arrived <- struct{}{}:
		default:
		}
		<-release
		w.Write([]byte(`[{"id":1,"title":"Fractions","question_count":3}]`))
	})

	var wg sync.WaitGroup
	results := make([][]FixedSet, 2)
	fetch := func(i int) {
		defer wg.Done()
		sets, err := l.ListFixedSets(context.Background())
		assert.NoError(t, err)
		results[i] = sets
	}

	wg.Add(2)
	go fetch(0)
	<-arrived
	go fetch(1)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	require.Len(t, results[1], 1)
	assert.Equal(t, "Fractions", results[1][0].Title)
}

func TestGetAfterWriteReachesServer(t *testing.T) {
	var posts, progressHits atomic.Int32
	arrived := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }
	t.Cleanup(unblock)

	l := newLearner(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/student/quiz/submit":
			posts.Add(1)
			w.Write([]byte(`{"is_correct":true,"correct_option":"b"}`))
		case "/api/student/progress":
			seen := posts.Load()
			if progressHits.Add(1) == 1 {
				close(arrived)
				<-release
			}
			fmt.Fprintf(w, `{"overall_accuracy":0,"total_attempts":%d}`, seen)
		}
	})

	before := make(chan *Progress, 1)
	go func() {
		p, err := l.FetchProgress(context.Background())
		assert.NoError(t, err)
		before <- p
	}()
	<-arrived

	_, err := l.SubmitAnswer(context.Background(), SubmitAnswerRequest{QuestionID: 1, SelectedOption: "b", Mode: ModeSmart})
	require.NoError(t, err)

	after := make(chan *Progress, 1)
	go func() {
		p, err := l.FetchProgress(context.Background())
		assert.NoError(t, err)
		after <- p
	}()

	select {
	case p := <-after:
		require.NotNil(t, p)
		assert.Equal(t, 1, p.TotalAttempts)
	case <-time.After(2 * time.Second):
		t.Fatal("read after write joined the earlier request")
	}

	unblock()
	p := <-before
	require.NotNil(t, p)
	assert.Equal(t, 0, p.TotalAttempts)
	assert.Equal(t, int32(2), progressHits.Load())
}

func TestWithTimeoutLeavesSharedClientAlone(t *testing.T) {
	c := NewClient(WithHTTPClient(http.DefaultClient), WithTimeout(5*time.Second))

	assert.Equal(t, time.Duration(0), http.DefaultClient.Timeout)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.NotSame(t, http.DefaultClient, c.httpClient)
}

func TestNilHTTPClientFallsBackToDefault(t *testing.T) {
	c := NewClient(WithHTTPClient(nil), WithTimeout(time.Second))
	require.NotNil(t, c.httpClient)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
}
