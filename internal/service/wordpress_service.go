package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"clover/internal/apperr"
	"clover/internal/logger"
	"clover/internal/models"
	"clover/internal/repository"
	"clover/internal/safeurl"
	"clover/internal/secrets"
	"clover/internal/wordpress"

	"github.com/PuerkitoBio/goquery"
)

type WordPressCredentials struct {
	SiteURL     string
	Username    string
	AppPassword string
}

// WordPressConnectionView is the connection as clients see it: the password
// is reduced to a flag.
type WordPressConnectionView struct {
	ID             string    `json:"id"`
	SiteURL        string    `json:"site_url"`
	Username       string    `json:"username"`
	IsConnected    bool      `json:"is_connected"`
	HasAppPassword bool      `json:"has_app_password"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newWordPressView(c *models.WordPressConnection) *WordPressConnectionView {
	return &WordPressConnectionView{
		ID:             c.ID,
		SiteURL:        c.SiteURL,
		Username:       c.Username,
		IsConnected:    c.IsConnected,
		HasAppPassword: c.AppPassword != "",
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type WordPressPublishInput struct {
	Title      string
	Content    string
	Status     wordpress.PostStatus
	ImageURL   string
	SEOEnabled bool
}

type WordPressPublishResult struct {
	PostID int64  `json:"postId"`
	Link   string `json:"link"`
}

type WordPressService interface {
	Get(ctx context.Context, userID string) (*WordPressConnectionView, error)
	Save(ctx context.Context, userID string, in WordPressCredentials) (*WordPressConnectionView, error)
	Test(ctx context.Context, in WordPressCredentials) error
	TestStored(ctx context.Context, userID string) error
	Publish(ctx context.Context, userID string, in WordPressPublishInput) (*WordPressPublishResult, error)
}

type wordPressService struct {
	connRepo       repository.WordPressRepository
	publishingRepo repository.PublishingRepository
	sealer         *secrets.Sealer
	open           WordPressFactory
}

func NewWordPressService(connRepo repository.WordPressRepository, publishingRepo repository.PublishingRepository, sealer *secrets.Sealer, open WordPressFactory) WordPressService {
	return &wordPressService{
		connRepo:       connRepo,
		publishingRepo: publishingRepo,
		sealer:         sealer,
		open:           open,
	}
}

func (s *wordPressService) Get(ctx context.Context, userID string) (*WordPressConnectionView, error) {
	conn, err := s.connRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newWordPressView(conn), nil
}

func validateSiteURL(raw string) (string, error) {
	site, err := safeurl.Validate(raw)
	if err != nil {
		return "", apperr.Invalid("siteUrl", "%s", err.Error())
	}
	return site, nil
}

// Save stores the connection with the password sealed. It starts out not
// connected until a test succeeds.
func (s *wordPressService) Save(ctx context.Context, userID string, in WordPressCredentials) (*WordPressConnectionView, error) {
	site, err := validateSiteURL(in.SiteURL)
	if err != nil {
		return nil, err
	}

	sealed, err := s.sealer.Seal(in.AppPassword)
	if err != nil {
		return nil, err
	}

	conn := &models.WordPressConnection{
		UserID:      userID,
		SiteURL:     site,
		Username:    strings.TrimSpace(in.Username),
		AppPassword: sealed,
	}
	if err := s.connRepo.Upsert(ctx, conn); err != nil {
		return nil, err
	}

	return newWordPressView(conn), nil
}

func (s *wordPressService) Test(ctx context.Context, in WordPressCredentials) error {
	site, err := validateSiteURL(in.SiteURL)
	if err != nil {
		return err
	}

	_, err = s.open(site, in.Username, in.AppPassword).Me(ctx)
	return err
}

// TestStored checks the saved credentials and records the outcome in
// is_connected.
func (s *wordPressService) TestStored(ctx context.Context, userID string) error {
	conn, password, err := s.stored(ctx, userID)
	if err != nil {
		return err
	}

	_, testErr := s.open(conn.SiteURL, conn.Username, password).Me(ctx)

	if err := s.connRepo.SetConnected(ctx, userID, testErr == nil); err != nil {
		logger.WithError(err).WithField("user_id", userID).Error("updating wordpress connection state")
	}

	return testErr
}

func (s *wordPressService) stored(ctx context.Context, userID string) (*models.WordPressConnection, string, error) {
	conn, err := s.connRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	password, err := s.sealer.Open(conn.AppPassword)
	if err != nil {
		return nil, "", fmt.Errorf("opening wordpress password: %w", err)
	}

	return conn, password, nil
}

// Publish creates the post on the stored site and appends a publishing
// record for the attempt. A featured image that cannot be transferred is
// skipped.
func (s *wordPressService) Publish(ctx context.Context, userID string, in WordPressPublishInput) (*WordPressPublishResult, error) {
	conn, password, err := s.stored(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("wordpress connection: %w", apperr.ErrNotFound)
		}
		return nil, err
	}

	if in.Status == "" {
		in.Status = wordpress.StatusPublish
	}

	client := s.open(conn.SiteURL, conn.Username, password)
	log := logger.WithFields(logger.Fields{"user_id": userID, "site": conn.SiteURL})

	post := wordpress.NewPost{Title: in.Title, Content: in.Content, Status: in.Status}

	if in.ImageURL != "" {
		imageURL, err := safeurl.Validate(in.ImageURL)
		if err != nil {
			return nil, apperr.Invalid("imageUrl", "%s", err.Error())
		}
		media, err := client.UploadMediaFromURL(ctx, imageURL)
		if err != nil {
			log.WithError(err).Warn("featured image upload failed")
		} else {
			post.FeaturedMedia = media.ID
		}
	}

	if in.SEOEnabled {
		post.Excerpt = Excerpt(in.Content, 155)
	}

	record := &models.PublishingRecord{
		UserID:   userID,
		Title:    in.Title,
		Content:  in.Content,
		Platform: "wordpress",
		ImageURL: in.ImageURL,
	}

	created, err := client.CreatePost(ctx, post)
	if err != nil {
		record.Status = models.PublishFailed
		s.saveRecord(ctx, record)
		return nil, err
	}

	record.Status = models.PublishPublished
	if in.Status != wordpress.StatusPublish {
		record.Status = models.PublishDraft
	}
	record.PublishedURL = created.Link
	s.saveRecord(ctx, record)

	return &WordPressPublishResult{PostID: created.ID, Link: created.Link}, nil
}

func (s *wordPressService) saveRecord(ctx context.Context, record *models.PublishingRecord) {
	if err := s.publishingRepo.Create(ctx, record); err != nil {
		logger.WithError(err).WithField("user_id", record.UserID).Error("saving publishing record")
	}
}

// Excerpt returns the plain text of an HTML or text body cut to at most n
// runes at a word boundary.
func Excerpt(content string, n int) string {
	text := content
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(content)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	if utf8.RuneCountInString(text) <= n {
		return text
	}

	runes := []rune(text)[:n]
	cut := string(runes)
	if i := strings.LastIndex(cut, " "); i > n/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}
