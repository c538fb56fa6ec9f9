package weather

// ClassifyCode maps an OpenWeatherMap condition id to a severity Reading.
func ClassifyCode(code int) Reading {
	var r Reading

	switch code {
	case 500, 511, 300, 301, 302, 310, 311, 313, 200, 230:
		r.Rain = 1
	case 501, 520, 531, 521, 201, 231, 232, 314, 321:
		r.Rain = 2
	case 502, 503, 522, 202:
		r.Rain = 3
	}

	switch code {
	case 612, 615, 616:
		r.Snow = 1
	case 621, 601:
		r.Snow = 2
	case 602, 622:
		r.Snow = 3
	}

	switch code {
	case 804, 500, 511, 520, 521, 522, 531:
		r.Cloud = 2
	default:
		r.Cloud = 1
	}

	// Snow, drizzle and thunderstorm groups are always overcast.
	switch code / 100 {
	case 6, 3, 2:
		r.Cloud = 2
	}

	return r
}
