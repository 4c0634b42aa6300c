package entity

type Entity interface {
	Slug() string
}
