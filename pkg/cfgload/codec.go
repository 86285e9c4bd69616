package cfgload

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"
)

var durationType = reflect.TypeFor[time.Duration]()

// keyOf 取字段的配置 key (json tag 首段),"-" 或缺失返回空。
func keyOf(field reflect.StructField) string {
	tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if tag == "-" {
		return ""
	}

	return tag
}

// isNested 判断字段是否为需要递归的嵌套结构体。
func isNested(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ.Kind() == reflect.Struct && typ != durationType
}

// defaultsToMap 把默认配置结构体转成嵌套 map,key 来自 json tag。
func defaultsToMap(cfg any) map[string]any {
	val := reflect.ValueOf(cfg)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return map[string]any{}
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return map[string]any{}
	}

	out := make(map[string]any)
	typ := val.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		key := keyOf(field)
		if key == "" {
			continue
		}

		if isNested(field.Type) {
			out[key] = defaultsToMap(val.Field(i).Interface())
			continue
		}
		out[key] = val.Field(i).Interface()
	}

	return out
}

// configKeys 收集结构体的叶子配置 key 路径 (如 render.max-depth)。
func configKeys(cfg any) []string {
	var keys []string
	walkKeys(reflect.TypeOf(cfg), "", func(path string, _ reflect.StructField) {
		keys = append(keys, path)
	})

	return keys
}

// walkKeys 递归遍历结构体字段,对每个叶子字段回调完整 key 路径。
func walkKeys(typ reflect.Type, prefix string, visit func(path string, field reflect.StructField)) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		key := keyOf(field)
		if key == "" {
			continue
		}

		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if isNested(field.Type) {
			walkKeys(field.Type, path, visit)
			continue
		}
		visit(path, field)
	}
}

// applyFlagOverrides 把用户显式设置的 CLI flags 写入 merged。
//
// flag 名由 key 路径生成,"." 转为 "-":render.max-depth → --render-max-depth。
func applyFlagOverrides(cmd *cli.Command, defaults any, merged map[string]any) {
	walkKeys(reflect.TypeOf(defaults), "", func(path string, field reflect.StructField) {
		flag := strings.ReplaceAll(path, ".", "-")
		if !cmd.IsSet(flag) {
			return
		}

		typ := field.Type
		if typ == durationType {
			setByPath(merged, path, cmd.Duration(flag))
			return
		}
		switch typ.Kind() {
		case reflect.String:
			setByPath(merged, path, cmd.String(flag))
		case reflect.Bool:
			setByPath(merged, path, cmd.Bool(flag))
		case reflect.Int, reflect.Int64:
			setByPath(merged, path, cmd.Int(flag))
		case reflect.Uint, reflect.Uint64:
			setByPath(merged, path, cmd.Uint(flag))
		case reflect.Float64:
			setByPath(merged, path, cmd.Float64(flag))
		case reflect.Slice:
			if typ.Elem().Kind() == reflect.String {
				setByPath(merged, path, cmd.StringSlice(flag))
			}
		case reflect.Map:
			if typ.Key().Kind() == reflect.String && typ.Elem().Kind() == reflect.String {
				setByPath(merged, path, cmd.StringMap(flag))
			}
		default:
			// 其余类型不支持 flag 覆盖
		}
	})
}

// parseConfigBytes 按扩展名解析 YAML/JSON,根节点必须是对象。
func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	var raw any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return map[string]any{}, nil
	}

	normalized, ok := normalizeKeys(raw).(map[string]any)
	if !ok {
		return nil, errors.New("config root must be an object")
	}

	return normalized, nil
}

// normalizeKeys 把 YAML 解出的 map[any]any 统一成 map[string]any。
func normalizeKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = normalizeKeys(value)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprintf("%v", key)] = normalizeKeys(value)
		}

		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeKeys(typed[i])
		}

		return typed
	default:
		return val
	}
}

// mergeMaps 深合并 src 到 dst,同 key 的嵌套 map 递归合并,其余覆盖。
func mergeMaps(dst, src map[string]any) {
	for key, value := range src {
		if srcMap, ok := value.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				mergeMaps(dstMap, srcMap)
				continue
			}
		}
		dst[key] = value
	}
}

// setByPath 按 "a.b.c" 路径写入嵌套 map,沿途自动建层。
func setByPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := dst
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value

			return
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
}

// decodeInto 把合并后的 map 解码到配置结构体,tag 与文件共用 json。
func decodeInto(data map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
