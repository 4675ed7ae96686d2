package world

type Weather string

const (
	WeatherClear  Weather = "clear"
	WeatherCloudy Weather = "cloudy"
	WeatherRain   Weather = "rain"
	WeatherStorm  Weather = "storm"
)

func WeatherKinds() []Weather {
	return []Weather{WeatherClear, WeatherCloudy, WeatherRain, WeatherStorm}
}
