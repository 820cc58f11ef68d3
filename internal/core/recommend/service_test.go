package recommend

import (
	"testing"

	"whisky-sommelier/internal/pkg/common"
)

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   common.PreferenceInput
		want common.PreferenceInput
	}{
		{
			"空輸入補上全部缺省值",
			common.PreferenceInput{},
			common.PreferenceInput{
				MinPrice:     0,
				MaxPrice:     defaultMaxPrice,
				RequestType:  common.RequestTypeFullRecommendation,
				OutputFormat: common.OutputFormatJSON,
			},
		},
		{
			"負的下限歸零",
			common.PreferenceInput{MinPrice: -100, MaxPrice: 8000},
			common.PreferenceInput{
				MinPrice:     0,
				MaxPrice:     8000,
				RequestType:  common.RequestTypeFullRecommendation,
				OutputFormat: common.OutputFormatJSON,
			},
		},
		{
			"上下限顛倒時交換",
			common.PreferenceInput{MinPrice: 9000, MaxPrice: 3000},
			common.PreferenceInput{
				MinPrice:     3000,
				MaxPrice:     9000,
				RequestType:  common.RequestTypeFullRecommendation,
				OutputFormat: common.OutputFormatJSON,
			},
		},
		{
			"chat 模式的輸出缺省為純文字",
			common.PreferenceInput{RequestType: common.RequestTypeChat},
			common.PreferenceInput{
				MaxPrice:     defaultMaxPrice,
				RequestType:  common.RequestTypeChat,
				OutputFormat: common.OutputFormatText,
			},
		},
		{
			"指定的輸出格式不被覆蓋",
			common.PreferenceInput{RequestType: common.RequestTypeFullRecommendation, OutputFormat: common.OutputFormatText},
			common.PreferenceInput{
				MaxPrice:     defaultMaxPrice,
				RequestType:  common.RequestTypeFullRecommendation,
				OutputFormat: common.OutputFormatText,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			applyDefaults(&in)
			if in.MinPrice != tt.want.MinPrice || in.MaxPrice != tt.want.MaxPrice {
				t.Errorf("price = (%v, %v), want (%v, %v)", in.MinPrice, in.MaxPrice, tt.want.MinPrice, tt.want.MaxPrice)
			}
			if in.RequestType != tt.want.RequestType {
				t.Errorf("RequestType = %q, want %q", in.RequestType, tt.want.RequestType)
			}
			if in.OutputFormat != tt.want.OutputFormat {
				t.Errorf("OutputFormat = %q, want %q", in.OutputFormat, tt.want.OutputFormat)
			}
		})
	}
}
