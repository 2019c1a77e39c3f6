package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/vamoslabs/redesocial/model"
	"github.com/vamoslabs/redesocial/utils"
)

// FakeUserStore is the in-memory UserStore used in tests and local runs.
// Scan order is cognitoId ascending, standing in for DynamoDB's unordered
// scan with a deterministic sequence.
type FakeUserStore struct {
	mu    sync.Mutex
	users map[string]model.User

	// UpdateHook, when set, runs before an Update is applied. Returning an
	// error simulates a failed write, for partial failure tests.
	UpdateHook func(user *model.User) error
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{users: map[string]model.User{}}
}

func (s *FakeUserStore) Get(ctx context.Context, cognitoId string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[cognitoId]
	if !ok {
		return nil, nil
	}
	copied := user
	copied.Following = append([]string{}, user.Following...)
	return &copied, nil
}

func (s *FakeUserStore) Put(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.CognitoId] = *user
	return nil
}

func (s *FakeUserStore) Update(ctx context.Context, user *model.User) error {
	if s.UpdateHook != nil {
		if err := s.UpdateHook(user); err != nil {
			return err
		}
	}
	return s.Put(ctx, user)
}

func (s *FakeUserStore) Search(ctx context.Context, filter string, start *UserCursor, limit int) (*UserQueryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := &UserQueryResult{Items: []model.User{}}
	skipping := start != nil
	for i, id := range ids {
		if skipping {
			if id == start.CognitoId {
				skipping = false
			}
			continue
		}
		user := s.users[id]
		if !strings.Contains(user.Name, filter) && !strings.Contains(user.Email, filter) {
			continue
		}
		result.Items = append(result.Items, user)
		if len(result.Items) == limit && i < len(ids)-1 {
			result.LastKey = &UserCursor{CognitoId: id}
			break
		}
	}
	return result, nil
}

// FakePostStore is the in-memory PostStore. The timeline query sorts by
// date descending (id descending as tiebreak); the membership scan walks id
// ascending, mirroring the real store's "scan order is not feed order".
type FakePostStore struct {
	mu    sync.Mutex
	posts map[string]model.Post

	// UpdateHook, when set, runs before an Update is applied.
	UpdateHook func(post *model.Post) error
}

func NewFakePostStore() *FakePostStore {
	return &FakePostStore{posts: map[string]model.Post{}}
}

func (s *FakePostStore) Get(ctx context.Context, id string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	copied := post
	copied.Likes = append([]string{}, post.Likes...)
	copied.Comments = append([]model.Comment{}, post.Comments...)
	return &copied, nil
}

func (s *FakePostStore) Put(ctx context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[post.Id] = *post
	return nil
}

func (s *FakePostStore) Update(ctx context.Context, post *model.Post) error {
	if s.UpdateHook != nil {
		if err := s.UpdateHook(post); err != nil {
			return err
		}
	}
	return s.Put(ctx, post)
}

func (s *FakePostStore) QueryByUser(ctx context.Context, userId string, start *PostCursor, limit int) (*PostQueryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timeline := []model.Post{}
	for _, post := range s.posts {
		if post.UserId == userId {
			timeline = append(timeline, post)
		}
	}
	sort.Slice(timeline, func(i, j int) bool {
		if timeline[i].Date != timeline[j].Date {
			return timeline[i].Date > timeline[j].Date
		}
		return timeline[i].Id > timeline[j].Id
	})

	from := 0
	if start.Complete() {
		for i, post := range timeline {
			if post.Id == start.Id {
				from = i + 1
				break
			}
		}
	}

	result := &PostQueryResult{Items: []model.Post{}}
	for i := from; i < len(timeline); i++ {
		result.Items = append(result.Items, timeline[i])
		if len(result.Items) == limit {
			if i < len(timeline)-1 {
				last := timeline[i]
				result.LastKey = &PostCursor{Id: last.Id, UserId: last.UserId, Date: last.Date}
			}
			break
		}
	}
	return result, nil
}

func (s *FakePostStore) ScanByOwners(ctx context.Context, owners []string, startId string, limit int) (*PostQueryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.posts))
	for id := range s.posts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := &PostQueryResult{Items: []model.Post{}}
	skipping := startId != ""
	for i, id := range ids {
		if skipping {
			if id == startId {
				skipping = false
			}
			continue
		}
		post := s.posts[id]
		if !utils.ContainsString(owners, post.UserId) {
			continue
		}
		result.Items = append(result.Items, post)
		if len(result.Items) == limit && i < len(ids)-1 {
			result.LastKey = &PostCursor{Id: id}
			break
		}
	}
	return result, nil
}
