package main

// 端到端巡检工具：对运行中的服务执行一轮完整的 Topic/Skill 场景
//（创建层级、默认难度、删除保护、搜索、清理），任何一步失败立即退出。

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"log"
	"net/http"
	"time"
)

var verbose bool

// scenario 封装一次巡检过程中共享的资源。
type scenario struct {
	client *http.Client
	base   string
}

func banner(title string) {
	log.Printf("\n=== %s ===", title)
}

func step(format string, args ...interface{}) {
	log.Printf(" • "+format, args...)
}

type topicInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ParentTopicID string `json:"parentTopicID"`
}

type skillInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TopicID    string `json:"topicID"`
	Difficulty string `json:"difficulty"`
}

type listEnvelope struct {
	Data []json.RawMessage `json:"data"`
	Meta struct {
		Total  int `json:"total"`
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	} `json:"meta"`
}

func main() {
	var base string
	flag.StringVar(&base, "base", "http://127.0.0.1:8080", "服务基础地址")
	flag.BoolVar(&verbose, "v", false, "打印每次响应体")
	flag.Parse()

	sc := &scenario{client: &http.Client{Timeout: 10 * time.Second}, base: base}

	banner("健康检查")
	sc.expectStatus("GET", "/healthz", nil, 200)
	step("healthz ok")

	banner("构建层级")
	var math topicInfo
	sc.doJSON("POST", "/topics", map[string]string{"name": "Math"}, 201, &math)
	step("created topic Math id=%s", math.ID)
	var algebra topicInfo
	sc.doJSON("POST", "/topics", map[string]string{"name": "Algebra", "parentTopicID": math.ID}, 201, &algebra)
	step("created topic Algebra parent=%s", algebra.ParentTopicID)
	var addition skillInfo
	sc.doJSON("POST", "/skills", map[string]string{"name": "Addition", "topicID": math.ID}, 201, &addition)
	if addition.Difficulty != "beginner" {
		log.Fatalf("expected default difficulty beginner, got %q", addition.Difficulty)
	}
	step("created skill Addition difficulty=%s", addition.Difficulty)

	banner("校验失败路径")
	sc.expectStatus("POST", "/topics", map[string]string{"name": "   "}, 422)
	step("whitespace name rejected (422)")
	sc.expectStatus("POST", "/skills", map[string]string{"name": "Orphan", "topicID": "no-such-topic"}, 422)
	step("dangling topicID rejected (422)")
	sc.expectStatus("DELETE", "/topics/"+math.ID, nil, 409)
	step("delete guard holds while skill exists (409)")

	banner("搜索与分页")
	var env listEnvelope
	sc.doJSON("GET", "/topics?q=alg&limit=1", nil, 200, &env)
	if env.Meta.Total < 1 {
		log.Fatalf("expected at least one match for q=alg, got total=%d", env.Meta.Total)
	}
	step("q=alg total=%d limit=%d", env.Meta.Total, env.Meta.Limit)
	sc.doJSON("GET", "/topics?limit=1000", nil, 200, &env)
	if env.Meta.Limit != 200 {
		log.Fatalf("expected limit clamped to 200, got %d", env.Meta.Limit)
	}
	step("limit=1000 clamped to %d", env.Meta.Limit)

	banner("清理")
	sc.expectStatus("DELETE", "/skills/"+addition.ID, nil, 204)
	sc.expectStatus("DELETE", "/topics/"+algebra.ID, nil, 204)
	sc.expectStatus("DELETE", "/topics/"+math.ID, nil, 204)
	sc.expectStatus("GET", "/topics/"+math.ID, nil, 404)
	step("all records removed")

	banner("巡检通过")
}

// doJSON 发送 JSON 请求并校验状态码，按需解码响应体。
func (sc *scenario) doJSON(method, path string, body interface{}, wantStatus int, out interface{}) {
	b := sc.request(method, path, body, wantStatus)
	if out != nil {
		if err := json.Unmarshal(b, out); err != nil {
			log.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
}

func (sc *scenario) expectStatus(method, path string, body interface{}, wantStatus int) {
	sc.request(method, path, body, wantStatus)
}

func (sc *scenario) request(method, path string, body interface{}, wantStatus int) []byte {
	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("marshal request: %v", err)
		}
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, sc.base+path, rd)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := sc.client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if verbose {
		log.Printf("%s %s -> %d %s", method, path, resp.StatusCode, string(b))
	}
	if resp.StatusCode != wantStatus {
		log.Fatalf("%s %s: want status %d, got %d (%s)", method, path, wantStatus, resp.StatusCode, string(b))
	}
	return b
}

