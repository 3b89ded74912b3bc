package server

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shortlink/internal/service"
	"shortlink/pkg/problemdetails"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/stretchr/testify/suite"
)

type HTTPServerTestSuite struct {
	suite.Suite
	srv *http.Server
}

func TestHTTPServerTestSuite(t *testing.T) {
	suite.Run(t, new(HTTPServerTestSuite))
}

func (s *HTTPServerTestSuite) SetupTest() {
	bc := newTestConf()
	s.srv = NewHTTPServer(bc.Server, newTestMappingService(s.T(), bc), log.DefaultLogger)
}

func (s *HTTPServerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *nethttp.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.srv.ServeHTTP(w, req)
	return w
}

func (s *HTTPServerTestSuite) shorten(body string) service.MappingReply {
	w := s.do(nethttp.MethodPost, "/shorten", body)
	s.Require().Equal(nethttp.StatusCreated, w.Code, w.Body.String())
	var reply service.MappingReply
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &reply))
	return reply
}

func (s *HTTPServerTestSuite) problem(w *httptest.ResponseRecorder) problemdetails.ProblemDetail {
	s.Equal(problemdetails.ContentType, w.Header().Get("Content-Type"))
	var p problemdetails.ProblemDetail
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func (s *HTTPServerTestSuite) TestShorten_CustomAlias() {
	reply := s.shorten(`{"fullUrl":"www.example.com","customAlias":"my-alias"}`)

	s.Equal("my-alias", reply.Alias)
	s.Equal("https://www.example.com", reply.FullURL)
	s.Equal("http://localhost:8080/my-alias", reply.ShortURL)
	s.False(reply.CreatedAt.IsZero())
}

func (s *HTTPServerTestSuite) TestShorten_GeneratedAlias() {
	reply := s.shorten(`{"fullUrl":"https://example.com","customAlias":""}`)

	s.Len(reply.Alias, 7)
}

func (s *HTTPServerTestSuite) TestShorten_Errors() {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantReason string
	}{
		{"malformed url", `{"fullUrl":"https://exa mple.com"}`, nethttp.StatusBadRequest, "MALFORMED"},
		{"unsupported scheme", `{"fullUrl":"ftp://example.com"}`, nethttp.StatusBadRequest, "UNSUPPORTED_SCHEME"},
		{"reserved alias", `{"fullUrl":"https://example.com","customAlias":"URLS"}`, nethttp.StatusBadRequest, "RESERVED"},
		{"invalid alias", `{"fullUrl":"https://example.com","customAlias":"a b"}`, nethttp.StatusBadRequest, "INVALID_FORMAT"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(nethttp.MethodPost, "/shorten", tt.body)

			s.Equal(tt.wantStatus, w.Code)
			s.Equal(tt.wantReason, s.problem(w).Reason)
		})
	}
}

func (s *HTTPServerTestSuite) TestShorten_InvalidAliasReason() {
	w := s.do(nethttp.MethodPost, "/shorten", `{"fullUrl":"https://example.com","customAlias":"ab"}`)

	s.Equal(nethttp.StatusBadRequest, w.Code)
	s.Equal("TOO_SHORT", s.problem(w).Metadata["reason"])
}

func (s *HTTPServerTestSuite) TestShorten_Duplicate() {
	s.shorten(`{"fullUrl":"https://example.com","customAlias":"taken"}`)

	w := s.do(nethttp.MethodPost, "/shorten", `{"fullUrl":"https://other.com","customAlias":"taken"}`)

	s.Equal(nethttp.StatusConflict, w.Code)
	s.Equal("DUPLICATE", s.problem(w).Reason)
}

func (s *HTTPServerTestSuite) TestRedirect() {
	s.shorten(`{"fullUrl":"https://example.com/landing","customAlias":"go"}`)

	w := s.do(nethttp.MethodGet, "/go", "")

	s.Equal(nethttp.StatusFound, w.Code)
	s.Equal("https://example.com/landing", w.Header().Get("Location"))
}

func (s *HTTPServerTestSuite) TestRedirect_NotFound() {
	w := s.do(nethttp.MethodGet, "/missing", "")

	s.Equal(nethttp.StatusNotFound, w.Code)
	p := s.problem(w)
	s.Equal("NOT_FOUND", p.Reason)
	s.Equal("/missing", p.Instance)
}

func (s *HTTPServerTestSuite) TestGetDetails() {
	created := s.shorten(`{"fullUrl":"https://example.com","customAlias":"details"}`)

	w := s.do(nethttp.MethodGet, "/urls/details", "")

	s.Equal(nethttp.StatusOK, w.Code)
	var reply service.MappingReply
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &reply))
	s.Equal(created.Alias, reply.Alias)
	s.Equal(created.FullURL, reply.FullURL)
}

func (s *HTTPServerTestSuite) TestListAll() {
	w := s.do(nethttp.MethodGet, "/urls", "")
	s.Equal(nethttp.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())

	s.shorten(`{"fullUrl":"https://one.example.com","customAlias":"one"}`)
	s.shorten(`{"fullUrl":"https://two.example.com","customAlias":"two"}`)

	w = s.do(nethttp.MethodGet, "/urls", "")
	var replies []service.MappingReply
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &replies))
	s.Len(replies, 2)
}

func (s *HTTPServerTestSuite) TestDelete() {
	s.shorten(`{"fullUrl":"https://example.com","customAlias":"bye"}`)

	w := s.do(nethttp.MethodDelete, "/bye", "")
	s.Equal(nethttp.StatusNoContent, w.Code)

	w = s.do(nethttp.MethodDelete, "/bye", "")
	s.Equal(nethttp.StatusNotFound, w.Code)
}
