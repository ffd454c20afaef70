// Package gmail fetches Google Alerts and Google Scholar Alerts notification
// emails from a Gmail inbox and parses them into structured alerts.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/logger"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
)

// Fetcher reads alert emails through the Gmail API.
type Fetcher struct {
	svc *gmailapi.Service
	log *logger.Logger
}

// NewFetcher authenticates against Gmail with the readonly scope.
func NewFetcher(ctx context.Context, credentialsFile, tokenFile string, log *logger.Logger) (*Fetcher, error) {
	httpClient, err := newHTTPClient(ctx, credentialsFile, tokenFile)
	if err != nil {
		return nil, err
	}

	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Fetcher{svc: svc, log: log}, nil
}

// buildQuery assembles the Gmail search query for one alert kind. daysBack is
// the end of the range (closest to now); when daysBackStart exceeds it the
// query becomes a window from daysBackStart to daysBack days ago.
func buildQuery(kind models.AlertKind, daysBack, daysBackStart int, now time.Time) string {
	query := "from:" + kind.Sender()

	after := now.AddDate(0, 0, -daysBack)
	if daysBackStart > daysBack {
		after = now.AddDate(0, 0, -daysBackStart)
		before := now.AddDate(0, 0, -daysBack)
		return fmt.Sprintf("%s after:%s before:%s", query, after.Format("2006/01/02"), before.Format("2006/01/02"))
	}

	return fmt.Sprintf("%s after:%s", query, after.Format("2006/01/02"))
}

// Statistics returns approximate total/unread/read counts for the period.
// The Gmail API's resultSizeEstimate is an estimate, which is sufficient for
// inbox visibility.
func (f *Fetcher) Statistics(ctx context.Context, kind models.AlertKind, daysBack, daysBackStart int) (models.Statistics, error) {
	base := buildQuery(kind, daysBack, daysBackStart, time.Now())

	total, err := f.estimate(ctx, base)
	if err != nil {
		return models.Statistics{}, err
	}
	unread, err := f.estimate(ctx, base+" is:unread")
	if err != nil {
		return models.Statistics{}, err
	}

	return models.Statistics{
		Total:  total,
		Unread: unread,
		Read:   total - unread,
	}, nil
}

func (f *Fetcher) estimate(ctx context.Context, query string) (int64, error) {
	resp, err := f.svc.Users.Messages.List("me").Q(query).MaxResults(1).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to query mailbox: %w", err)
	}
	return resp.ResultSizeEstimate, nil
}

// maxPageSize is the Gmail API's cap on a single Messages.List page.
const maxPageSize = 500

// FetchAlerts retrieves up to maxResults alert emails matching the period and
// parses each into an Alert. Listings beyond one API page are followed via
// NextPageToken. Messages that cannot be fetched or parsed are logged and
// skipped rather than failing the batch.
func (f *Fetcher) FetchAlerts(ctx context.Context, kind models.AlertKind, daysBack, daysBackStart int, maxResults int64) ([]models.Alert, error) {
	query := buildQuery(kind, daysBack, daysBackStart, time.Now())
	f.log.Debug("listing alert messages", "query", query, "max", maxResults)

	ids, err := collectMessageIDs(maxResults, func(pageToken string, pageSize int64) ([]string, string, error) {
		call := f.svc.Users.Messages.List("me").Q(query).MaxResults(pageSize).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, "", fmt.Errorf("failed to list alert messages: %w", err)
		}

		pageIDs := make([]string, 0, len(resp.Messages))
		for _, m := range resp.Messages {
			pageIDs = append(pageIDs, m.Id)
		}
		return pageIDs, resp.NextPageToken, nil
	})
	if err != nil {
		return nil, err
	}

	alerts := make([]models.Alert, 0, len(ids))
	for _, id := range ids {
		alert, err := f.fetchAlert(ctx, kind, id)
		if err != nil {
			f.log.Warn("skipping unparseable message", "id", id, "error", err)
			continue
		}
		alerts = append(alerts, alert)
	}

	return alerts, nil
}

// collectMessageIDs pages through message listings until maxResults IDs are
// gathered or the listing runs out. Each page requests the remainder of
// maxResults, clamped to the API page cap.
func collectMessageIDs(maxResults int64, listPage func(pageToken string, pageSize int64) ([]string, string, error)) ([]string, error) {
	var ids []string
	pageToken := ""

	for int64(len(ids)) < maxResults {
		pageSize := maxResults - int64(len(ids))
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}

		pageIDs, next, err := listPage(pageToken, pageSize)
		if err != nil {
			return nil, err
		}

		ids = append(ids, pageIDs...)
		if int64(len(ids)) > maxResults {
			ids = ids[:maxResults]
		}

		if next == "" || len(pageIDs) == 0 {
			break
		}
		pageToken = next
	}

	return ids, nil
}

func (f *Fetcher) fetchAlert(ctx context.Context, kind models.AlertKind, messageID string) (models.Alert, error) {
	msg, err := f.svc.Users.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return models.Alert{}, fmt.Errorf("failed to get message: %w", err)
	}

	var subject, date string
	for _, h := range msg.Payload.Headers {
		switch strings.ToLower(h.Name) {
		case "subject":
			subject = h.Value
		case "date":
			date = h.Value
		}
	}

	body := extractBody(msg.Payload)

	alert := ParseAlert(kind, subject, body)
	alert.Date = date
	alert.MessageID = messageID
	return alert, nil
}

// extractBody pulls the decoded message body, preferring text/html parts
// because alert emails put article structure there.
func extractBody(payload *gmailapi.MessagePart) string {
	if payload == nil {
		return ""
	}

	if len(payload.Parts) > 0 {
		var plain string
		for _, part := range payload.Parts {
			data := decodeBody(part)
			if data == "" {
				continue
			}
			switch part.MimeType {
			case "text/html":
				return data
			case "text/plain":
				if plain == "" {
					plain = data
				}
			default:
				if nested := extractBody(part); nested != "" {
					return nested
				}
			}
		}
		return plain
	}

	return decodeBody(payload)
}

func decodeBody(part *gmailapi.MessagePart) string {
	if part == nil || part.Body == nil || part.Body.Data == "" {
		return ""
	}

	data, err := base64.URLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			return ""
		}
	}
	return string(data)
}
