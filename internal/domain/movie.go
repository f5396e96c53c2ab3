package domain

type Movie struct {
	Slug         string
	Name         string
	OriginName   string
	Year         int
	Quality      string
	Language     string
	Content      string
	EpisodeState string
	Servers      []MovieServer
}

// MovieServer is one streaming source of a movie with its own episode list.
type MovieServer struct {
	Name     string
	Episodes []MovieEpisode
}

type MovieEpisode struct {
	Name string
	Link string
}
