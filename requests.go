package main

type RouteRequest struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

type FilmSearchRequest struct {
	By    string `json:"by"`
	Query string `json:"q"`
}

type TripRequest struct {
	Title string `param:"title"`
	From  string `json:"from"`
	// Departure is "15:04" or RFC 3339, empty means now.
	Departure string `json:"departure"`
}

type ReachRequest struct {
	Src     string  `json:"src"`
	Minutes float64 `json:"minutes"`
}
