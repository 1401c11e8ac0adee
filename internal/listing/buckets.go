package listing

import "time"

// Bucket é um recorte de data relativo ao relógio no momento da consulta.
type Bucket string

const (
	BucketToday     Bucket = "today"
	BucketYesterday Bucket = "yesterday"
	BucketThisWeek  Bucket = "thisWeek"
	BucketThisMonth Bucket = "thisMonth"
)

func ParseBucket(s string) (Bucket, bool) {
	switch b := Bucket(s); b {
	case BucketToday, BucketYesterday, BucketThisWeek, BucketThisMonth:
		return b, true
	}
	return "", false
}

// Range devolve [from, to). to zero significa sem limite superior.
// A semana começa no domingo.
func (b Bucket) Range(now time.Time) (from, to time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch b {
	case BucketToday:
		return today, time.Time{}
	case BucketYesterday:
		return today.AddDate(0, 0, -1), today
	case BucketThisWeek:
		return today.AddDate(0, 0, -int(today.Weekday())), time.Time{}
	case BucketThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), time.Time{}
	}
	return time.Time{}, time.Time{}
}

func (b Bucket) Contains(t, now time.Time) bool {
	from, to := b.Range(now)
	if t.Before(from) {
		return false
	}
	return to.IsZero() || t.Before(to)
}
