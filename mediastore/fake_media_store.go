package mediastore

import (
	"fmt"
	"io"
	"io/ioutil"
	"sync"

	"github.com/pkg/errors"
)

// FakeMediaStore keeps objects in memory and mints deterministic URLs.
// Used in tests and local development runs.
type FakeMediaStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	counter int

	// FailKeys lists keys whose URL resolution should fail, to exercise the
	// per-item resolution failure policy.
	FailKeys map[string]bool
}

func NewFakeMediaStore() *FakeMediaStore {
	return &FakeMediaStore{
		objects:  map[string][]byte{},
		FailKeys: map[string]bool{},
	}
}

func (s *FakeMediaStore) SaveImage(bucket, prefix, filename string, body io.Reader) (string, error) {
	content, err := ioutil.ReadAll(body)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	key := fmt.Sprintf("%s-%d-%s", prefix, s.counter, filename)
	s.objects[bucket+"/"+key] = content
	return key, nil
}

func (s *FakeMediaStore) GetImageURL(bucket, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailKeys[key] {
		return "", errors.New("fake media store: resolution failure")
	}
	// Unknown keys still resolve; the real store presigns without a
	// HeadObject round trip either.
	return "https://fake-media/" + bucket + "/" + key, nil
}

// Object returns a stored object's content, for upload assertions.
func (s *FakeMediaStore) Object(bucket, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.objects[bucket+"/"+key]
	return content, ok
}
