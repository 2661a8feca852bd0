package domain

type CommentCounts struct {
	Blog     int64 `json:"blog"`
	Telegram int64 `json:"telegram"`
	Total    int64 `json:"total"`
}

type LikeCounts struct {
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
	Total    int64 `json:"total"`
}

type SinkCounts struct {
	TotalViews int64 `json:"totalViews"`
}

type AdminStats struct {
	Comments CommentCounts `json:"comments"`
	Likes    LikeCounts    `json:"likes"`
	Sink     SinkCounts    `json:"sink"`
}
