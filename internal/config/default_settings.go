package config

import "github.com/tauraamui/shotdetect/pkg/configdef"

type defaultSettingKey uint

const (
	PROMINENCE              defaultSettingKey = 0x0
	OPTICALFLOWSCALEPERCENT defaultSettingKey = 0x1
	VIDEOBACKEND            defaultSettingKey = 0x2
	CATALOGENABLED          defaultSettingKey = 0x3
)

var defaultSettings = map[defaultSettingKey]interface{}{
	PROMINENCE: configdef.Prominence{
		Histogram:   0.5,
		Entropy:     6,
		OpticalFlow: 0.5,
	},
	OPTICALFLOWSCALEPERCENT: 50,
	VIDEOBACKEND:            "opencv",
	CATALOGENABLED:          true,
}

func defaultValues() configdef.Values {
	return configdef.Values{
		Prominence:              defaultSettings[PROMINENCE].(configdef.Prominence),
		OpticalFlowScalePercent: defaultSettings[OPTICALFLOWSCALEPERCENT].(int),
		VideoBackend:            defaultSettings[VIDEOBACKEND].(string),
		Catalog: configdef.Catalog{
			Enabled: defaultSettings[CATALOGENABLED].(bool),
		},
	}
}
