package telegram

import (
	"fmt"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"maple-blog/internal/domain"
	"maple-blog/internal/pkg/i18n"
)

var (
	styleURL     = regexp.MustCompile(`(?i)url\(["']?(.*?)["']?\)`)
	counterValue = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)([KkMm]?)$`)
)

// Parser turns the public channel preview markup into posts.
type Parser struct {
	Host    string
	Channel string
	Locale  string
	Now     func() time.Time
}

func (p *Parser) label(key string) string {
	return i18n.Translate(p.Locale, key)
}

// ParseChannel reads a /s/<channel> page. Posts come back newest first.
func (p *Parser) ParseChannel(r io.Reader) (*domain.ChannelInfo, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse channel page: %w", err)
	}

	posts := []domain.TelegramPost{}
	doc.Find(".tgme_channel_history .tgme_widget_message_wrap").Each(func(_ int, wrap *goquery.Selection) {
		msg := wrap.Find(".tgme_widget_message").First()
		if msg.Length() > 0 {
			posts = append(posts, p.parsePost(msg))
		}
	})
	for i, j := 0, len(posts)-1; i < j; i, j = i+1, j-1 {
		posts[i], posts[j] = posts[j], posts[i]
	}

	title := strings.TrimSpace(doc.Find(".tgme_channel_info_header_title").First().Text())
	if title == "" {
		title = p.label("CHANNEL_TITLE")
	}
	avatar, _ := doc.Find(".tgme_page_photo_image img").First().Attr("src")
	counters := doc.Find(".tgme_channel_info_counter .counter_value")

	return &domain.ChannelInfo{
		Title:       title,
		Description: strings.TrimSpace(doc.Find(".tgme_channel_info_description").First().Text()),
		Avatar:      avatar,
		Subscribers: parseCounter(counters.Eq(0).Text()),
		Photos:      parseCounter(counters.Eq(1).Text()),
		Posts:       posts,
	}, nil
}

// ParsePost reads an embedded single-post page. It returns nil when the page
// holds no message.
func (p *Parser) ParsePost(r io.Reader) (*domain.TelegramPost, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse post page: %w", err)
	}

	msg := doc.Find(".tgme_widget_message").First()
	if msg.Length() == 0 {
		return nil, nil
	}
	post := p.parsePost(msg)
	return &post, nil
}

func (p *Parser) parsePost(item *goquery.Selection) domain.TelegramPost {
	id := strings.TrimPrefix(item.AttrOr("data-post", ""), p.Channel+"/")
	if id == "" {
		id = "0"
	}
	postLink := fmt.Sprintf("https://%s/%s/%s", p.Host, p.Channel, id)

	datetime := item.Find(".tgme_widget_message_date time").First().AttrOr("datetime", "")
	formatted := p.label("UNKNOWN_TIME")
	if t, err := time.Parse(time.RFC3339, datetime); err == nil {
		formatted = relativeTime(t, p.Now(), p.Locale)
	}

	textElement := item.Find(".tgme_widget_message_text").First()
	content := ""
	if textElement.Length() > 0 {
		clone := textElement.Clone()
		clone.Find("a").Each(func(_ int, link *goquery.Selection) {
			if strings.HasPrefix(link.Text(), "#") {
				link.AddClass("hashtag")
			} else {
				link.AddClass("link link-primary")
			}
		})
		clone.Find(".tgme_widget_message_photo_wrap, .tgme_widget_message_video_wrap").Remove()
		content, _ = clone.Html()
	}

	views := strings.TrimSpace(item.Find(".tgme_widget_message_views").First().Text())
	if views == "" {
		views = "0"
	}

	media := append(parseImages(item), parseVideos(item)...)

	return domain.TelegramPost{
		ID:            id,
		Datetime:      datetime,
		FormattedDate: formatted,
		Text:          textElement.Text(),
		HTMLContent:   content + p.unsupportedMedia(item, postLink),
		Views:         views,
		Media:         media,
		LinkPreview:   parseLinkPreview(item),
		Reply:         p.parseReply(item),
	}
}

func parseImages(item *goquery.Selection) []domain.MediaFile {
	media := []domain.MediaFile{}
	item.Find(".tgme_widget_message_photo_wrap").Each(func(_ int, photo *goquery.Selection) {
		if u := styleImage(photo); u != "" {
			media = append(media, domain.MediaFile{Type: domain.MediaImage, URL: u})
		}
	})
	return media
}

func parseVideos(item *goquery.Selection) []domain.MediaFile {
	media := []domain.MediaFile{}
	item.Find(".tgme_widget_message_video_wrap video").Each(func(_ int, video *goquery.Selection) {
		if src := video.AttrOr("src", ""); src != "" {
			media = append(media, domain.MediaFile{
				Type:      domain.MediaVideo,
				URL:       src,
				Thumbnail: video.AttrOr("poster", ""),
			})
		}
	})
	return media
}

func parseLinkPreview(item *goquery.Selection) *domain.LinkPreview {
	link := item.Find(".tgme_widget_message_link_preview").First()
	href := link.AttrOr("href", "")
	if href == "" {
		return nil
	}

	u, err := url.Parse(href)
	if err != nil || u.Hostname() == "" {
		return nil
	}

	title := link.Find(".link_preview_title").Text()
	if title == "" {
		title = link.Find(".link_preview_site_name").Text()
	}

	return &domain.LinkPreview{
		URL:         href,
		Title:       title,
		Description: link.Find(".link_preview_description").Text(),
		Image:       styleImage(link.Find(".link_preview_image").First()),
		Hostname:    u.Hostname(),
	}
}

func (p *Parser) parseReply(item *goquery.Selection) *domain.ReplyInfo {
	reply := item.Find(".tgme_widget_message_reply").First()
	if reply.Length() == 0 {
		return nil
	}
	href := reply.AttrOr("href", "")
	if href == "" {
		return nil
	}

	id := href[strings.LastIndex(href, "/")+1:]
	if i := strings.IndexAny(id, "?#"); i >= 0 {
		id = id[:i]
	}

	author := reply.Find(".tgme_widget_message_author_name").Text()
	if author == "" {
		author = p.label("UNKNOWN_USER")
	}

	text := strings.TrimSpace(strings.Replace(reply.Text(), author, "", 1))
	if text == "" {
		switch {
		case reply.Find(".tgme_widget_message_photo").Length() > 0:
			text = p.label("REPLY_PHOTO")
		case reply.Find(".tgme_widget_message_sticker").Length() > 0:
			text = p.label("REPLY_STICKER")
		case reply.Find(".tgme_widget_message_video").Length() > 0:
			text = p.label("REPLY_VIDEO")
		default:
			text = p.label("REPLY_EMPTY")
		}
	}

	return &domain.ReplyInfo{
		URL:    "/post/" + id,
		Author: author,
		Text:   text,
	}
}

func (p *Parser) unsupportedMedia(item *goquery.Selection, postLink string) string {
	if item.Find(".message_media_not_supported_wrap").Length() == 0 {
		return ""
	}
	return fmt.Sprintf(`<div class="unsupported-media-notice not-prose my-2 p-3 bg-base-300/30 border border-base-content/10 rounded-lg flex items-center justify-between gap-2 text-sm">`+
		`<div class="flex items-center gap-2"><i class="ri-error-warning-line text-warning"></i><span>%s</span></div>`+
		`<a href="%s" target="_blank" rel="noopener noreferrer" class="btn btn-xs btn-ghost">%s <i class="ri-external-link-line"></i></a>`+
		`</div>`,
		html.EscapeString(p.label("MEDIA_TOO_LARGE")), html.EscapeString(postLink), html.EscapeString(p.label("VIEW_IN_TELEGRAM")))
}

func styleImage(sel *goquery.Selection) string {
	m := styleURL.FindStringSubmatch(sel.AttrOr("style", ""))
	if m == nil {
		return ""
	}
	return m[1]
}

// parseCounter reads "1 234", "12.5K" or "3M". Zero and garbage give nil.
func parseCounter(s string) *int {
	s = strings.Join(strings.Fields(s), "")
	m := counterValue.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	switch strings.ToUpper(m[2]) {
	case "K":
		f *= 1_000
	case "M":
		f *= 1_000_000
	}
	n := int(f)
	if n == 0 {
		return nil
	}
	return &n
}
