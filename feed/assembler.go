// Package feed builds paginated post listings: the single author timeline,
// newest first with a resumable index cursor, and the multi author home
// aggregation with its weaker best-effort ordering.
package feed

import (
	"context"
	"os"
	"strconv"

	"github.com/vamoslabs/redesocial/mediastore"
	"github.com/vamoslabs/redesocial/model"
	"github.com/vamoslabs/redesocial/store"
	"github.com/vamoslabs/redesocial/utils"
	Logger "github.com/vamoslabs/redesocial/utils/log"
)

// DefaultPageSize is the page size of both feed endpoints unless
// FEED_PAGE_SIZE overrides it.
const DefaultPageSize = 20

// Page is the paginated response envelope: Count is the size of this page
// (not a total), LastKey is the opaque token resuming the next page, empty
// when the listing is exhausted.
type Page struct {
	Count   int          `json:"count"`
	LastKey string       `json:"lastKey,omitempty"`
	Data    []model.Post `json:"data"`
}

type Assembler struct {
	posts    store.PostStore
	media    mediastore.MediaStore
	pageSize int
}

func NewAssembler(posts store.PostStore, media mediastore.MediaStore, pageSize int) *Assembler {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Assembler{posts: posts, media: media, pageSize: pageSize}
}

// PageSizeFromEnv resolves FEED_PAGE_SIZE, falling back to the default on
// absent or unparseable values.
func PageSizeFromEnv() int {
	raw := os.Getenv(utils.EnvFeedPageSize)
	if raw == "" {
		return DefaultPageSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		Logger.Log.Warn("invalid ", utils.EnvFeedPageSize, " value: ", raw)
		return DefaultPageSize
	}
	return size
}

// UserTimeline returns one page of userId's posts, newest first. lastKey is
// the opaque token from the previous page: undecodable tokens are rejected,
// decodable tokens missing any of the three resume fields are treated as
// absent and the timeline restarts from the top.
func (a *Assembler) UserTimeline(ctx context.Context, userId, postBucket, lastKey string) (*Page, error) {
	cursor, err := store.DecodePostCursor(lastKey)
	if err != nil {
		return nil, utils.WrapApiError(err, utils.ErrorKindInvalidInput, "Chave de paginação inválida.")
	}
	if !cursor.Complete() {
		cursor = nil
	}

	result, err := a.posts.QueryByUser(ctx, userId, cursor, a.pageSize)
	if err != nil {
		return nil, utils.WrapApiError(err, utils.ErrorKindInternal,
			"Erro ao buscar o feed de publicações! Tente novamente ou contacte o administrador do sistema.")
	}
	return a.buildPage(result, postBucket), nil
}

// HomeFeed returns one page of posts authored by the user or anyone the
// user follows. The underlying membership scan cannot sort across authors,
// so ordering is best effort, not newest first; the cursor carries only the
// last seen post id.
func (a *Assembler) HomeFeed(ctx context.Context, user *model.User, postBucket, lastKey string) (*Page, error) {
	cursor, err := store.DecodePostCursor(lastKey)
	if err != nil {
		return nil, utils.WrapApiError(err, utils.ErrorKindInvalidInput, "Chave de paginação inválida.")
	}
	startId := ""
	if cursor != nil {
		startId = cursor.Id
	}

	scope := append([]string{user.CognitoId}, user.Following...)
	result, err := a.posts.ScanByOwners(ctx, scope, startId, a.pageSize)
	if err != nil {
		return nil, utils.WrapApiError(err, utils.ErrorKindInternal,
			"Erro ao buscar o feed da home! Tente novamente ou contacte o administrador do sistema.")
	}
	return a.buildPage(result, postBucket), nil
}

func (a *Assembler) buildPage(result *store.PostQueryResult, postBucket string) *Page {
	page := &Page{
		Count: len(result.Items),
		Data:  result.Items,
	}
	if result.LastKey != nil {
		page.LastKey = store.EncodeCursor(result.LastKey)
	}

	// Resolve image keys to retrievable URLs. One failing object must not
	// fail the page: the reference is blanked and the item kept.
	for i := range page.Data {
		post := &page.Data[i]
		if post.Image == "" {
			continue
		}
		url, err := a.media.GetImageURL(postBucket, post.Image)
		if err != nil {
			Logger.Log.Warn("fail to resolve image url for post ", post.Id, ": ", err)
			post.Image = ""
			continue
		}
		post.Image = url
	}
	return page
}
