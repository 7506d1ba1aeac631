package world

import (
	"math"

	"dinotrek.io/internal/sim/world/logic/mathx"
)

const (
	secondsPerHour = 60 * 60
	secondsPerDay  = secondsPerHour * 24
)

const (
	darkPurple   = "#352b40"
	eggplant     = "#653d48"
	oldRose      = "#be7979"
	nonPhotoBlue = "#99d4e6"
	vistaBlue    = "#7b99c8"
	ultraViolet  = "#535c89"
)

var skyColorPerHour = [24]string{
	darkPurple, // midnight
	darkPurple,
	darkPurple,
	darkPurple,
	darkPurple,
	eggplant,
	eggplant,
	oldRose, // sunrise
	nonPhotoBlue,
	nonPhotoBlue,
	nonPhotoBlue,
	nonPhotoBlue,
	nonPhotoBlue, // noon
	nonPhotoBlue,
	nonPhotoBlue,
	vistaBlue,
	vistaBlue,
	ultraViolet,
	ultraViolet,
	eggplant, // dusk
	eggplant,
	darkPurple,
	darkPurple,
	darkPurple,
}

func (w *World) advanceClock(dtMS float64) {
	w.worldTime = mathx.ModFloat(w.worldTime+dtMS/1000*w.cfg.WorldTimePerGameTime, secondsPerDay)
}

// WorldTime is seconds since midnight.
func (w *World) WorldTime() float64 { return w.worldTime }

func (w *World) Hour() int { return int(math.Floor(w.worldTime / secondsPerHour)) }

func (w *World) Minutes() int { return int(math.Floor(w.worldTime/60)) % 60 }

// SunAngle is 0 when the sun is fully risen (noon) and π at midnight.
func (w *World) SunAngle() float64 {
	return mathx.ModFloat(float64(w.Hour())/24*mathx.Tau+math.Pi, mathx.Tau)
}

func (w *World) SkyColor() string { return skyColorPerHour[w.Hour()%24] }
