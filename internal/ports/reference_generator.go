package ports

type ReferenceGenerator interface {
	New(concertID int) string
}
