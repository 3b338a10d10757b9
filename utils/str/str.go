/*
 * Copyright 2023 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package str provides value to string conversions used when decoded
// configuration or JSON input has to be turned into record fields.
package str

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// ToString input的值转成字符串,忽略错误
func ToString(input interface{}) string {
	v, _ := ToStringMaybeErr(input)
	return v
}

// ToStringMaybeErr input的值转成字符串
func ToStringMaybeErr(input interface{}) (string, error) {
	if input == nil {
		return "", nil
	}
	switch v := input.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(v), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case int8:
		return strconv.Itoa(int(v)), nil
	case uint8:
		return strconv.Itoa(int(v)), nil
	case int16:
		return strconv.Itoa(int(v)), nil
	case uint16:
		return strconv.Itoa(int(v)), nil
	case int32:
		return strconv.Itoa(int(v)), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case json.Number:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	case error:
		return v.Error(), nil
	case map[interface{}]interface{}:
		// 转换为 map[string]interface{}
		convertedInput := make(map[string]interface{})
		for k, value := range v {
			convertedInput[fmt.Sprintf("%v", k)] = value
		}
		if newValue, err := json.Marshal(convertedInput); err == nil {
			return string(newValue), nil
		} else {
			return "", err
		}
	default:
		if newValue, err := json.Marshal(input); err == nil {
			return string(newValue), nil
		} else {
			return "", err
		}
	}
}

// ToStringMapString 把interface类型 转 map[string]string类型
func ToStringMapString(input interface{}) map[string]string {
	var output = map[string]string{}

	switch v := input.(type) {
	case map[string]string:
		return v
	case map[string]interface{}:
		for k, val := range v {
			output[k] = ToString(val)
		}
		return output
	case map[interface{}]string:
		for k, val := range v {
			output[ToString(k)] = val
		}
		return output
	case map[interface{}]interface{}:
		for k, val := range v {
			output[ToString(k)] = ToString(val)
		}
		return output
	case string:
		_ = json.Unmarshal([]byte(v), &output)
		return output
	default:
		return output
	}
}
