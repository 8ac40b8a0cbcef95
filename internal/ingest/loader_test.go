package ingest

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockFeedClient struct {
	mock.Mock
}

func (m *mockFeedClient) FetchPage(ctx context.Context, pageURL string) (APIResponse, error) {
	args := m.Called(ctx, pageURL)
	return args.Get(0).(APIResponse), args.Error(1)
}

type LoaderSuite struct {
	suite.Suite

	client *mockFeedClient

	logBuf *bytes.Buffer
	logger *log.Logger

	loader *Loader
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderSuite))
}

func (s *LoaderSuite) SetupTest() {
	s.client = &mockFeedClient{}

	s.logBuf = &bytes.Buffer{}
	s.logger = log.New(s.logBuf, "", 0)

	s.loader = NewLoader(s.client, DefaultArticlesPerPage, -1, s.logger)
}

const (
	testBase  = "https://api.example/v2/top"
	firstPage = "https://api.example/v2/top?country=us&apiKey=K&category=business"
)

func str(s string) *string { return &s }

func okResponse(total, n int) APIResponse {
	resp := APIResponse{Status: StatusOK, TotalResults: Count(total)}
	for i := 0; i < n; i++ {
		resp.Articles = append(resp.Articles, APIArticle{
			Title:  str(`Title "quoted"`),
			URL:    str("https://news.example/a"),
			Source: APISource{Name: str("Example")},
		})
	}
	return resp
}

// TestLoadAll_TwoPages 25 results at 20 per page means exactly two requests
func (s *LoaderSuite) TestLoadAll_TwoPages() {
	s.client.
		On("FetchPage", mock.Anything, firstPage).
		Return(okResponse(25, 20), nil).
		Once()
	s.client.
		On("FetchPage", mock.Anything, firstPage+"&page=2").
		Return(okResponse(25, 5), nil).
		Once()

	err := s.loader.LoadAll(context.Background(), testBase, "K", "us", "business")

	s.Require().NoError(err)
	s.client.AssertExpectations(s.T())
	s.client.AssertNumberOfCalls(s.T(), "FetchPage", 2)

	s.Equal(25, s.loader.TotalResults())
	s.Equal(2, s.loader.TotalPages())
	s.Equal(StatusOK, s.loader.Status())
	s.Len(s.loader.Articles(), 25)
	s.Equal(1, s.loader.Articles()[19].Page)
	s.Equal(2, s.loader.Articles()[20].Page)
	s.Contains(s.logBuf.String(), "loaded 25 articles")
}

// TestLoadAll_NormalizesEveryPage quotes are stripped on all pages, not only the first
func (s *LoaderSuite) TestLoadAll_NormalizesEveryPage() {
	s.client.On("FetchPage", mock.Anything, firstPage).Return(okResponse(21, 20), nil).Once()
	s.client.On("FetchPage", mock.Anything, firstPage+"&page=2").Return(okResponse(21, 1), nil).Once()

	s.Require().NoError(s.loader.LoadAll(context.Background(), testBase, "K", "us", "business"))

	for _, a := range s.loader.Articles() {
		s.Equal("Title quoted", a.Title)
		s.Equal("", a.Author)
	}
}

// TestLoadAll_SinglePage totalResults within one page triggers no follow-up request
func (s *LoaderSuite) TestLoadAll_SinglePage() {
	s.client.On("FetchPage", mock.Anything, firstPage).Return(okResponse(20, 20), nil).Once()

	s.Require().NoError(s.loader.LoadAll(context.Background(), testBase, "K", "us", "business"))

	s.client.AssertExpectations(s.T())
	s.Equal(1, s.loader.TotalPages())
	s.Len(s.loader.Articles(), 20)
}

// TestLoadAll_TopicOmitsCategory the sentinel category never reaches the URL
func (s *LoaderSuite) TestLoadAll_TopicOmitsCategory() {
	s.client.
		On("FetchPage", mock.Anything, testBase+"?country=us&apiKey=K").
		Return(okResponse(0, 0), nil).
		Once()

	s.Require().NoError(s.loader.LoadAll(context.Background(), testBase, "K", "us", "Topic"))

	s.client.AssertExpectations(s.T())
	s.Equal(0, s.loader.TotalPages())
	s.Empty(s.loader.Articles())
}

// TestLoadAll_BadStatusStops a non-ok page aborts without further requests
func (s *LoaderSuite) TestLoadAll_BadStatusStops() {
	s.client.On("FetchPage", mock.Anything, firstPage).Return(okResponse(60, 20), nil).Once()
	s.client.
		On("FetchPage", mock.Anything, firstPage+"&page=2").
		Return(APIResponse{Status: "error", Code: "rateLimited", Message: "too many requests"}, nil).
		Once()

	err := s.loader.LoadAll(context.Background(), testBase, "K", "us", "business")

	s.Require().ErrorIs(err, ErrLoad)
	s.Contains(err.Error(), "rateLimited")
	s.client.AssertExpectations(s.T())
	s.client.AssertNotCalled(s.T(), "FetchPage", mock.Anything, firstPage+"&page=3")

	// first page stays readable
	s.Len(s.loader.Articles(), 20)
	s.Equal(3, s.loader.TotalPages())
	s.Contains(s.logBuf.String(), "fetch failed")
}

// TestLoadAll_FirstPageError transport failures are wrapped in ErrLoad
func (s *LoaderSuite) TestLoadAll_FirstPageError() {
	netErr := errors.New("connection refused")
	s.client.On("FetchPage", mock.Anything, firstPage).Return(APIResponse{}, netErr).Once()

	err := s.loader.LoadAll(context.Background(), testBase, "K", "us", "business")

	s.Require().ErrorIs(err, ErrLoad)
	s.ErrorIs(err, netErr)
	s.Equal(StatusNotYet, s.loader.Status())
	s.Equal(0, s.loader.TotalResults())
	s.Empty(s.loader.Articles())
}

// TestLoadAll_NegativeTotalResults a negative count fails the page instead of
// producing a page count
func (s *LoaderSuite) TestLoadAll_NegativeTotalResults() {
	s.client.On("FetchPage", mock.Anything, firstPage).Return(okResponse(-5, 1), nil).Once()

	err := s.loader.LoadAll(context.Background(), testBase, "K", "us", "business")

	s.Require().ErrorIs(err, ErrLoad)
	s.Contains(err.Error(), "negative totalResults -5")
	s.client.AssertExpectations(s.T())
	s.Equal(0, s.loader.TotalResults())
	s.Equal(0, s.loader.TotalPages())
	s.Empty(s.loader.Articles())
}

// TestLoadAll_ZeroPerPage no page count is derived, only the first page is loaded
func (s *LoaderSuite) TestLoadAll_ZeroPerPage() {
	s.loader = NewLoader(s.client, 0, -1, s.logger)
	s.client.On("FetchPage", mock.Anything, firstPage).Return(okResponse(100, 20), nil).Once()

	s.Require().NoError(s.loader.LoadAll(context.Background(), testBase, "K", "us", "business"))

	s.client.AssertExpectations(s.T())
	s.Equal(0, s.loader.TotalPages())
	s.Equal(100, s.loader.TotalResults())
}

// TestLoadAll_MaxPages the configured cap stops paging early
func (s *LoaderSuite) TestLoadAll_MaxPages() {
	s.loader = NewLoader(s.client, 20, 2, s.logger)
	s.client.On("FetchPage", mock.Anything, firstPage).Return(okResponse(100, 20), nil).Once()
	s.client.On("FetchPage", mock.Anything, firstPage+"&page=2").Return(okResponse(100, 20), nil).Once()

	s.Require().NoError(s.loader.LoadAll(context.Background(), testBase, "K", "us", "business"))

	s.client.AssertExpectations(s.T())
	s.Len(s.loader.Articles(), 40)
	s.Contains(s.logBuf.String(), "reached configured page limit 2")
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, perPage, want int
		ok                   bool
	}{
		{45, 20, 3, true},
		{40, 20, 2, true},
		{0, 20, 0, true},
		{1, 20, 1, true},
		{21, 20, 2, true},
		{100, 0, 0, false},
		{-5, 20, 0, false},
		{-40, 20, 0, false},
	}

	for _, tc := range cases {
		got, ok := TotalPages(tc.total, tc.perPage)
		assert.Equal(t, tc.want, got, "total=%d perPage=%d", tc.total, tc.perPage)
		assert.Equal(t, tc.ok, ok)
	}
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t,
		"https://api.example/v2/top?country=us&apiKey=K",
		BuildURL(testBase, "K", "us", "TOPIC"))
	assert.Equal(t,
		"https://api.example/v2/top?country=kr&apiKey=K&category=science",
		BuildURL(testBase, "K", "kr", "Science"))
	assert.Equal(t,
		"https://api.example/v2/top?pageSize=20&country=us&apiKey=K&category=health",
		BuildURL(testBase+"?pageSize=20", "K", "us", "health"))
	assert.Equal(t,
		firstPage+"&page=7",
		PageURL(firstPage, 7))
}

func TestMapArticle(t *testing.T) {
	got := MapArticle(APIArticle{
		Title:       str(`He said "hi"`),
		Description: str(`"quoted" all over "here"`),
		Author:      nil,
		URL:         str(`https://news.example/?q="x"`),
		URLToImage:  nil,
		PublishedAt: str("2024-01-02T03:04:05Z"),
		Source:      APISource{Name: str("Example News")},
	})

	assert.Equal(t, "He said hi", got.Title)
	assert.Equal(t, "quoted all over here", got.Description)
	assert.Equal(t, "", got.Author)
	assert.Equal(t, `https://news.example/?q="x"`, got.URL, "only title, description and author are stripped")
	assert.Equal(t, "", got.ImageURL)
	assert.Equal(t, "2024-01-02T03:04:05Z", got.PublishedAt)
	assert.Equal(t, "Example News", got.Source.Name)
}
