// internal/gmail/sync.go
package gmail

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"assessor-financeiro/internal/categorizer"
	"assessor-financeiro/internal/config"
	"assessor-financeiro/internal/domain"
	"assessor-financeiro/internal/parser"
	"assessor-financeiro/internal/storage"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// DefaultQuery narrows the mailbox search to known bank senders.
const DefaultQuery = "from:(noreply@nubank.com.br OR nubank OR itau.com.br OR bradesco OR btg OR bancointer) newer_than:1d"

const defaultMaxResults = 50

var htmlTagRe = regexp.MustCompile(`<[^<]+?>`)

// Storage is everything a sync run touches: raw-email dedup/ingest, account
// ownership checks, transaction creation and category resolution.
type Storage interface {
	storage.RawEmailStorage
	storage.AccountStorage
	storage.TransactionStorage
	categorizer.CategoryStore
}

type SyncConfig struct {
	Query      string
	MaxResults int64
}

type SyncResult struct {
	MessagesFound       int      `json:"messages_found"`
	MessagesParsed      int      `json:"messages_parsed"`
	TransactionsCreated int      `json:"transactions_created"`
	Errors              []string `json:"errors"`
}

type Service struct {
	oauth  *oauth2.Config
	tokens *TokenStore
	store  Storage
}

func NewService(cfg config.Config, tokens *TokenStore, store Storage) *Service {
	return &Service{
		oauth: &oauth2.Config{
			ClientID:     cfg.GmailClientID,
			ClientSecret: cfg.GmailClientSecret,
			RedirectURL:  cfg.GmailRedirectURL,
			Scopes:       []string{gmailapi.GmailReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		tokens: tokens,
		store:  store,
	}
}

func (s *Service) Tokens() *TokenStore { return s.tokens }

// AuthURL returns the consent URL plus the random state nonce that ties the
// callback back to the initiating user.
func (s *Service) AuthURL(ctx context.Context, userID int64) (string, string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate state: %w", err)
	}
	state := hex.EncodeToString(buf)
	if err := s.tokens.SaveState(ctx, state, userID); err != nil {
		return "", "", err
	}
	url := s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return url, state, nil
}

// Exchange swaps the callback code for a token and stores it for the user
// bound to the state nonce. Returns that user's id.
func (s *Service) Exchange(ctx context.Context, state, code string) (int64, error) {
	userID, err := s.tokens.UserForState(ctx, state)
	if err != nil {
		return 0, err
	}
	if userID == 0 {
		return 0, fmt.Errorf("invalid state parameter")
	}
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return 0, fmt.Errorf("exchange code: %w", err)
	}
	if err := s.tokens.SaveToken(ctx, userID, token); err != nil {
		return 0, err
	}
	_ = s.tokens.DeleteState(ctx, state)
	return userID, nil
}

// Sync searches the user's mailbox, parses bank notification emails and
// creates transactions on the given account. Per-message failures are
// collected, not fatal.
func (s *Service) Sync(ctx context.Context, userID, accountID int64, cfg SyncConfig) (SyncResult, error) {
	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return SyncResult{}, err
	}
	if token == nil {
		return SyncResult{}, fmt.Errorf("gmail not authenticated")
	}

	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(s.oauth.TokenSource(ctx, token)))
	if err != nil {
		return SyncResult{}, fmt.Errorf("build gmail client: %w", err)
	}

	if cfg.Query == "" {
		cfg.Query = DefaultQuery
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}

	list, err := svc.Users.Messages.List("me").Q(cfg.Query).MaxResults(cfg.MaxResults).Context(ctx).Do()
	if err != nil {
		return SyncResult{}, fmt.Errorf("search messages: %w", err)
	}

	result := SyncResult{Errors: []string{}, MessagesFound: len(list.Messages)}
	for _, ref := range list.Messages {
		msg, err := svc.Users.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("fetch message %s: %v", ref.Id, err))
			continue
		}

		fromAddress, subject := headerValues(msg)
		body := messageBody(msg)

		bank := parser.DetectBank(fromAddress, &subject)
		if bank == "" {
			continue
		}

		existing, err := s.store.FindRawEmailByMessageID(ctx, ref.Id)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if existing != nil {
			continue
		}

		input := parser.EmailInput{
			MessageID:   ref.Id,
			FromAddress: fromAddress,
			Subject:     &subject,
			Body:        body,
			BankSource:  &bank,
		}
		parsed, err := parser.Parse(input)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.MessagesParsed++
		if !parsed.Success {
			continue
		}

		raw := &domain.RawEmail{
			UserID:      userID,
			MessageID:   input.MessageID,
			FromAddress: input.FromAddress,
			Subject:     input.Subject,
			Body:        input.Body,
			BankSource:  input.BankSource,
		}
		if err := s.store.CreateRawEmail(ctx, raw); err != nil {
			// Lost a race with another ingest of the same message: skip.
			if errors.Is(err, storage.ErrDuplicate) {
				continue
			}
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		if err := s.createTransaction(ctx, userID, accountID, raw.ID, parsed); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.TransactionsCreated++
	}

	slog.Info("gmail sync finished", "user_id", userID,
		"found", result.MessagesFound, "parsed", result.MessagesParsed,
		"created", result.TransactionsCreated, "errors", len(result.Errors))
	return result, nil
}

func (s *Service) createTransaction(ctx context.Context, userID, accountID, rawEmailID int64, parsed parser.ParsedTransaction) error {
	account, err := s.store.GetAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("account not found")
	}

	categorization, err := categorizer.CategorizeWithStore(ctx, s.store, userID, parsed.Merchant, parsed.Description)
	if err != nil {
		return err
	}

	transactionDate := time.Now().UTC()
	if parsed.TransactionDate != nil {
		transactionDate = *parsed.TransactionDate
	}
	return s.store.CreateTransaction(ctx, &domain.Transaction{
		AccountID:           accountID,
		Amount:              *parsed.Amount,
		Merchant:            parsed.Merchant,
		Description:         parsed.Description,
		TransactionDate:     transactionDate,
		TransactionType:     parsed.TransactionType,
		PaymentMethod:       parsed.PaymentMethod,
		CardLast4:           parsed.CardLast4,
		InstallmentsTotal:   parsed.InstallmentsTotal,
		InstallmentsCurrent: parsed.InstallmentsCurrent,
		CategoryID:          categorization.CategoryID,
		RawEmailID:          &rawEmailID,
	})
}

func headerValues(msg *gmailapi.Message) (fromAddress, subject string) {
	if msg.Payload == nil {
		return "", ""
	}
	for _, header := range msg.Payload.Headers {
		switch strings.ToLower(header.Name) {
		case "from":
			fromAddress = header.Value
		case "subject":
			subject = header.Value
		}
	}
	return fromAddress, subject
}

// messageBody prefers the text/plain part, falling back to tag-stripped HTML,
// then to the top-level body.
func messageBody(msg *gmailapi.Message) string {
	if msg.Payload == nil {
		return ""
	}
	if len(msg.Payload.Parts) > 0 {
		var html string
		for _, part := range msg.Payload.Parts {
			if part.Body == nil || part.Body.Data == "" {
				continue
			}
			data := decodeBase64URL(part.Body.Data)
			switch part.MimeType {
			case "text/plain":
				return data
			case "text/html":
				if html == "" {
					html = data
				}
			}
		}
		if html != "" {
			return htmlTagRe.ReplaceAllString(html, "")
		}
		return ""
	}
	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		return decodeBase64URL(msg.Payload.Body.Data)
	}
	return ""
}

func decodeBase64URL(data string) string {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return ""
	}
	return string(decoded)
}
