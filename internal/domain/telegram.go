package domain

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

type MediaFile struct {
	Type      MediaType `json:"type"`
	URL       string    `json:"url"`
	Thumbnail string    `json:"thumbnail,omitempty"`
}

type LinkPreview struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Hostname    string `json:"hostname"`
}

type ReplyInfo struct {
	URL    string `json:"url"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

type TelegramPost struct {
	ID            string       `json:"id"`
	Datetime      string       `json:"datetime"`
	FormattedDate string       `json:"formattedDate"`
	Text          string       `json:"text"`
	HTMLContent   string       `json:"htmlContent"`
	Views         string       `json:"views"`
	Media         []MediaFile  `json:"media"`
	LinkPreview   *LinkPreview `json:"linkPreview,omitempty"`
	Reply         *ReplyInfo   `json:"reply,omitempty"`
}

type ChannelInfo struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Avatar      string         `json:"avatar"`
	Subscribers *int           `json:"subscribers,omitempty"`
	Photos      *int           `json:"photos,omitempty"`
	Posts       []TelegramPost `json:"posts"`
}

type ChannelQuery struct {
	Before string `query:"before"`
	After  string `query:"after"`
	Q      string `query:"q"`
	ID     string `query:"-"`
}
