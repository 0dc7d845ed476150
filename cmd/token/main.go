// 生成访问任务接口用的 JWT，给运维脚本或调试用
package main

import (
	"flag"
	"fmt"
	"log"

	"xhs_spider/internal/pkg/config"
	"xhs_spider/pkg/utils"
)

func main() {
	subject := flag.String("subject", "admin", "令牌主体")
	flag.Parse()

	config.LoadConfig()

	token, expiresAt, err := utils.GenerateToken(*subject)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
	fmt.Println("expires at:", expiresAt.Format("2006-01-02 15:04:05"))
}
