package forecast

// Icon names follow Material Symbols, the icon set the dashboard page loads.
const (
	IconClearDay     = "sunny"
	IconClearNight   = "clear_night"
	IconCloudy       = "cloud"
	IconRain         = "rainy"
	IconSnow         = "weather_snowy"
	IconThunderstorm = "thunderstorm"
	IconFog          = "foggy"
)

const codeClear = 1000

var (
	cloudyCodes = codeSet(1003, 1006, 1009)
	rainCodes   = codeSet(
		1063, 1069, 1072, 1150, 1153, 1168, 1171, 1180, 1183, 1186,
		1189, 1192, 1195, 1198, 1201, 1240, 1243, 1246,
	)
	snowCodes = codeSet(
		1066, 1114, 1117, 1204, 1207, 1210, 1213, 1216, 1219, 1222,
		1225, 1237, 1249, 1252, 1255, 1258, 1261, 1264, 1279, 1282,
	)
	thunderCodes = codeSet(1087, 1273, 1276)
	fogCodes     = codeSet(1030, 1135, 1147)
)

func codeSet(codes ...int) map[int]struct{} {
	set := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// Classify maps a provider condition code to an icon name. Rules are checked
// in a fixed priority order, first match wins. Classification is total:
// unknown codes render as the clear variants.
func Classify(code int, isDay bool) string {
	clear := IconClearDay
	if !isDay {
		clear = IconClearNight
	}

	switch {
	case code == codeClear:
		return clear
	case member(cloudyCodes, code):
		return IconCloudy
	case member(rainCodes, code):
		return IconRain
	case member(snowCodes, code):
		return IconSnow
	case member(thunderCodes, code):
		return IconThunderstorm
	case member(fogCodes, code):
		return IconFog
	}
	return clear
}

// ClassifyDay classifies with the daytime variant, for callers that have no
// clock in scope.
func ClassifyDay(code int) string {
	return Classify(code, true)
}

func member(set map[int]struct{}, code int) bool {
	_, ok := set[code]
	return ok
}
