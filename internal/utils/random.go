package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

// GenerateRandomRole 随机生成一个员工角色，不会生成 Ceo
func GenerateRandomRole() domain.Role {
	staff := domain.Roles[1 : len(domain.Roles)-1]
	return staff[rand.Intn(len(staff))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

// GenerateRandomUser 生成一个随机的用户，withRole 为 false 时生成没有角色的普通读者
func GenerateRandomUser(password string, emailDomainName string, withRole bool) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var role *domain.Role
	if withRole {
		r := GenerateRandomRole()
		role = &r
	}

	return domain.NewUser(username, username+"@"+emailDomainName, string(passwordHash), role), nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = "abcdefghijklmnopqrstuvwxyz"

// GenerateRandomID 生成由小写字母和数字组成的随机串，可以直接拼接到 slug 中
func GenerateRandomID(letterLength int, digitLength int) string {
	var b strings.Builder
	for i := 0; i < letterLength; i++ {
		b.WriteByte(letters[rand.Intn(len(letters))])
	}
	for i := 0; i < digitLength; i++ {
		b.WriteByte(digits[rand.Intn(len(digits))])
	}
	return b.String()
}

var tagValues = []string{"校园", "科技", "体育", "文化", "时政", "社团", "招新", "讲座"}

// GenerateRandomTagValues 随机挑选 n 个不重复的标签名称
func GenerateRandomTagValues(n int) []string {
	values := append([]string{}, tagValues...)
	rand.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	return values[:min(n, len(values))]
}

var titleWords = []string{
	"学院", "举办", "年度", "比赛", "同学", "活动", "顺利", "开展",
	"报告", "会议", "新闻", "采访", "志愿", "服务", "图书馆", "开放",
}

// GenerateRandomArticle 生成一篇随机文章，发布时间分布在最近两周内
func GenerateRandomArticle(authorID uuid.UUID, tagID *int32) *domain.Article {
	title := ""
	for i := rand.Intn(4) + 3; i > 0; i-- {
		title += titleWords[rand.Intn(len(titleWords))]
	}

	content := ""
	for i := rand.Intn(5) + 2; i > 0; i-- {
		content += "文章内容" + GenerateRandomID(20, 10) + "。\n"
	}

	article := domain.NewArticle(authorID, title, content, "", tagID, GenerateSlug(title)+"-"+GenerateRandomID(0, 4))
	article.Approved = rand.Intn(4) != 0
	article.CreatedAt = time.Now().UTC().Add(-time.Duration(rand.Intn(14*24)) * time.Hour)

	return article
}
