package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/sirupsen/logrus"

	"github.com/masmgr/gecko-go/internal/blob"
	"github.com/masmgr/gecko-go/internal/diff"
	"github.com/masmgr/gecko-go/internal/git"
	"github.com/masmgr/gecko-go/internal/history"
	"github.com/masmgr/gecko-go/internal/output"
	"github.com/masmgr/gecko-go/internal/tree"
)

// errRepoNotFound is returned for repository names that do not map to a repository.
var errRepoNotFound = errors.New("repository not found")

// errNotAFile is returned when a blob URL names a directory.
var errNotAFile = errors.New("not a file")

// badRequestError carries a message for a malformed query parameter.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

// openRepo opens the repository directory named by the {repo} URL parameter.
func (s *Server) openRepo(r *http.Request) (*git.Repository, error) {
	name := chi.URLParam(r, "repo")
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return nil, errRepoNotFound
	}

	repo, err := git.Open(filepath.Join(s.reposRoot, name))
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) || errors.Is(err, os.ErrNotExist) {
			return nil, errRepoNotFound
		}
		return nil, fmt.Errorf("open repository %s: %w", name, err)
	}
	return repo, nil
}

// run opens the request's repository and calls fn with it inside a pool slot.
func (s *Server) run(w http.ResponseWriter, r *http.Request, fn func(repo *git.Repository) (any, error)) {
	var body any
	err := s.pool.Do(r.Context(), func() error {
		repo, err := s.openRepo(r)
		if err != nil {
			return err
		}
		body, err = fn(repo)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if raw, ok := body.(*blob.Rendered); ok {
		writeRaw(w, raw)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, func(repo *git.Repository) (any, error) {
		res, err := tree.NewNavigator(repo).Browse("", "")
		if err != nil {
			return nil, err
		}
		return output.NewJSONListing("HEAD", res, s.now()), nil
	})
}

func (s *Server) handleBranches(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, func(repo *git.Repository) (any, error) {
		branches, err := repo.Branches()
		if err != nil {
			return nil, err
		}
		return output.NewJSONBranches(branches), nil
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	s.browse(w, r, false)
}

func (s *Server) handleBlob(w http.ResponseWriter, r *http.Request) {
	s.browse(w, r, true)
}

// browse resolves {ref} and the wildcard tail. Tree URLs that land on a file
// render the file; blob URLs that land on a directory are rejected.
func (s *Server) browse(w http.ResponseWriter, r *http.Request, fileOnly bool) {
	ref := chi.URLParam(r, "ref")
	tail := chi.URLParam(r, "*")
	raw := r.URL.Query().Get("raw") == "true"

	s.run(w, r, func(repo *git.Repository) (any, error) {
		res, err := tree.NewNavigator(repo).Browse(ref, tail)
		if err != nil {
			return nil, err
		}

		if !res.IsBlob() {
			if fileOnly {
				return nil, errNotAFile
			}
			return output.NewJSONListing(ref, res, s.now()), nil
		}

		rendered, err := blob.Render(res.Blob, res.BlobName, raw)
		if err != nil {
			return nil, err
		}
		if rendered.Kind == blob.KindRaw {
			return rendered, nil
		}
		return output.NewJSONBlob(ref, res, rendered, s.now()), nil
	})
}

func (s *Server) handleCommits(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	q := r.URL.Query()

	s.run(w, r, func(repo *git.Repository) (any, error) {
		size := s.cfg.History.PageSize
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, &badRequestError{msg: fmt.Sprintf("invalid limit %q", v)}
			}
			size = n
		}

		page, err := history.NewPager(repo, s.cfg.History.MaxPageSize).Page(history.Request{
			Ref:      ref,
			Cursor:   q.Get("from"),
			PageSize: size,
		})
		if err != nil {
			return nil, err
		}
		return output.NewJSONHistory(ref, page, s.now()), nil
	})
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.run(w, r, func(repo *git.Repository) (any, error) {
		res, err := diff.NewEngine(repo, s.diffOptions()).Diff(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return output.NewJSONDiff(res, s.now()), nil
	})
}

func (s *Server) diffOptions() diff.Options {
	return diff.Options{
		ContextLines:      s.cfg.Diff.ContextLines,
		LegacyFingerprint: s.cfg.Diff.LegacyFingerprint,
		Include:           s.cfg.Filters.Include,
		Exclude:           s.cfg.Filters.Exclude,
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Segment string `json:"segment,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		pathErr *git.PathNotFoundError
		badReq  *badRequestError
	)
	switch {
	case errors.As(err, &pathErr):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error(), Segment: pathErr.Segment()})
	case git.IsNotFound(err), errors.Is(err, errRepoNotFound), errors.Is(err, errNotAFile):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.As(err, &badReq):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case r.Context().Err() != nil:
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "request cancelled"})
	default:
		s.log.WithFields(logrus.Fields{"path": r.URL.Path, "error": err}).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeRaw(w http.ResponseWriter, r *blob.Rendered) {
	w.Header().Set("Content-Type", r.ContentType)
	w.Header().Set("Content-Disposition", r.Disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(r.Raw)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(r.Raw)
}
