package domain

type ArticleTag struct {
	ID    int32  `json:"id"`
	Value string `json:"value"`
}

type ArticleTagFilter struct{}
